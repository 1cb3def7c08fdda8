package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo cadastros em memória.
type ReferenceRepo struct {
	s    *Store
	inTx bool
}

// NewReferenceRepository constrói o repositório.
func NewReferenceRepository(s *Store) *ReferenceRepo {
	return &ReferenceRepo{s: s}
}

func (r *ReferenceRepo) Create(_ context.Context, item *entity.ReferenceItem) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		for _, other := range d.references {
			if other.Kind == item.Kind && strings.EqualFold(other.Code, item.Code) {
				return fmt.Errorf("%w: código %s já existe em %s", domain.ErrConflict, item.Code, item.Kind)
			}
		}
		c := *item
		d.references[item.ID] = &c
		d.track(item.ID)
		return nil
	})
}

func (r *ReferenceRepo) GetByID(_ context.Context, id string) (*entity.ReferenceItem, error) {
	var out *entity.ReferenceItem
	err := r.s.read(func(d *dataset) error {
		item, ok := d.references[id]
		if !ok {
			return fmt.Errorf("%w: cadastro %s", domain.ErrNotFound, id)
		}
		c := *item
		out = &c
		return nil
	})
	return out, err
}

func (r *ReferenceRepo) Update(_ context.Context, item *entity.ReferenceItem) error {
	return r.s.write(r.inTx, func(d *dataset) error {
		if _, ok := d.references[item.ID]; !ok {
			return fmt.Errorf("%w: cadastro %s", domain.ErrNotFound, item.ID)
		}
		c := *item
		d.references[item.ID] = &c
		return nil
	})
}

func (r *ReferenceRepo) List(_ context.Context, kind string, includeInactive bool) ([]*entity.ReferenceItem, error) {
	var out []*entity.ReferenceItem
	err := r.s.read(func(d *dataset) error {
		for _, item := range d.references {
			if item.Kind != kind || (!includeInactive && !item.Active) {
				continue
			}
			c := *item
			out = append(out, &c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *ReferenceRepo) ExistsCode(_ context.Context, kind, code, excludeID string) (bool, error) {
	var exists bool
	err := r.s.read(func(d *dataset) error {
		for id, item := range d.references {
			if id != excludeID && item.Kind == kind && strings.EqualFold(item.Code, code) {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

func (r *ReferenceRepo) CountActive(_ context.Context, kind string) (int, error) {
	n := 0
	err := r.s.read(func(d *dataset) error {
		for _, item := range d.references {
			if item.Kind == kind && item.Active {
				n++
			}
		}
		return nil
	})
	return n, err
}
