package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

// WithdrawalRepo retiradas em memória.
type WithdrawalRepo struct {
	s    *Store
	inTx bool
}

// NewWithdrawalRepository constrói o repositório.
func NewWithdrawalRepository(s *Store) *WithdrawalRepo {
	return &WithdrawalRepo{s: s}
}

func (r *WithdrawalRepo) Create(_ context.Context, w *entity.Withdrawal) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		if _, ok := d.admissions[w.AdmissionID]; !ok {
			return fmt.Errorf("%w: entreposto %s", domain.ErrNotFound, w.AdmissionID)
		}
		d.withdrawals[w.ID] = cloneWithdrawal(w)
		d.track(w.ID)
		return nil
	})
}

func (r *WithdrawalRepo) GetByID(_ context.Context, id string) (*entity.Withdrawal, error) {
	var out *entity.Withdrawal
	err := r.s.read(func(d *dataset) error {
		w, ok := d.withdrawals[id]
		if !ok {
			return fmt.Errorf("%w: retirada %s", domain.ErrNotFound, id)
		}
		out = cloneWithdrawal(w)
		return nil
	})
	return out, err
}

func (r *WithdrawalRepo) ListByAdmission(_ context.Context, admissionID string) ([]*entity.Withdrawal, error) {
	var out []*entity.Withdrawal
	err := r.s.read(func(d *dataset) error {
		var ids []string
		for id, w := range d.withdrawals {
			if w.AdmissionID == admissionID {
				ids = append(ids, id)
			}
		}
		d.sortByOrder(ids, true)
		for _, id := range ids {
			out = append(out, cloneWithdrawal(d.withdrawals[id]))
		}
		return nil
	})
	return out, err
}
