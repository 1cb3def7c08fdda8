package entreposto

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moby/locker"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	rules "github.com/jhoicas/biocol-import-api/internal/domain/entreposto"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
	"github.com/jhoicas/biocol-import-api/pkg/clock"
	"github.com/jhoicas/biocol-import-api/pkg/logger"
)

// WithdrawalUseCase processa retiradas parciais contra o saldo de uma D.A.
// Cada retirada é tudo-ou-nada: todas as linhas são validadas antes de qualquer baixa.
type WithdrawalUseCase struct {
	txRunner       TxRunner
	admissionRepo  repository.AdmissionRepository
	withdrawalRepo repository.WithdrawalRepository
	receipts       ReceiptGenerator
	metrics        Metrics
	log            *logger.Logger
	clock          clock.Clock
	locks          *locker.Locker // por id da D.A.
}

// NewWithdrawalUseCase constrói o caso de uso.
func NewWithdrawalUseCase(
	txRunner TxRunner,
	admissionRepo repository.AdmissionRepository,
	withdrawalRepo repository.WithdrawalRepository,
	receipts ReceiptGenerator,
	metrics Metrics,
	log *logger.Logger,
	clk clock.Clock,
) *WithdrawalUseCase {
	if metrics == nil {
		metrics = NopMetrics
	}
	if log == nil {
		log = logger.Nop()
	}
	return &WithdrawalUseCase{
		txRunner:       txRunner,
		admissionRepo:  admissionRepo,
		withdrawalRepo: withdrawalRepo,
		receipts:       receipts,
		metrics:        metrics,
		log:            log.Component("entreposto"),
		clock:          clk,
		locks:          locker.New(),
	}
}

// Process valida e aplica a retirada. A D.A. fica bloqueada (mutex local e
// SELECT FOR UPDATE) do carregamento até o commit.
func (uc *WithdrawalUseCase) Process(ctx context.Context, admissionID, userID string, in dto.WithdrawalRequest) (*dto.WithdrawalDTO, error) {
	uc.locks.Lock(admissionID)
	defer uc.locks.Unlock(admissionID)

	now := uc.clock.Now()
	var (
		w         *entity.Withdrawal
		status    string
		finalized bool
	)
	err := uc.txRunner.Run(ctx, func(
		admissionRepo repository.AdmissionRepository,
		withdrawalRepo repository.WithdrawalRepository,
		_ repository.ShipmentRepository,
		_ repository.StatusHistoryRepository,
	) error {
		a, err := admissionRepo.GetForUpdate(ctx, admissionID)
		if err != nil {
			return err
		}
		if err := validateWithdrawal(a, in.Items); err != nil {
			return err
		}
		w = applyWithdrawal(a, in, userID, now)
		if err := admissionRepo.UpdateBalance(ctx, a); err != nil {
			return err
		}
		if err := withdrawalRepo.Create(ctx, w); err != nil {
			return err
		}
		finalized = a.Status == entity.AdmissionStatusFinalized
		status = rules.ResolveStatus(a, now)
		return nil
	})
	if err != nil {
		uc.metrics.WithdrawalRejected(rejectReason(err))
		uc.log.Warn().
			Err(err).
			Str("admission_id", admissionID).
			Int("lines", len(in.Items)).
			Msg("retirada rejeitada")
		return nil, err
	}

	uc.metrics.WithdrawalAccepted()
	if finalized {
		uc.metrics.AdmissionFinalized()
	}
	uc.log.Info().
		Str("admission_id", admissionID).
		Str("withdrawal_id", w.ID).
		Str("document_number", w.DocumentNumber).
		Int("lines", len(w.Items)).
		Bool("finalized", finalized).
		Msg("retirada registrada")

	out := toWithdrawalDTO(w)
	out.AdmissionStatus = status
	return &out, nil
}

// validateWithdrawal checa todas as linhas sem alterar nada. Linhas repetidas
// do mesmo item são validadas pela soma solicitada.
func validateWithdrawal(a *entity.Admission, lines []dto.WithdrawalLineRequest) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: itens para retirada são obrigatórios", domain.ErrInvalidInput)
	}
	byID := make(map[string]*entity.BalanceItem, len(a.Items))
	for _, it := range a.Items {
		byID[it.ID] = it
	}
	requested := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		item, ok := byID[l.BalanceItemID]
		if !ok {
			return fmt.Errorf("%w: item de saldo %s não encontrado", domain.ErrNotFound, l.BalanceItemID)
		}
		if err := rules.CheckAvailability(item, l.Quantity); err != nil {
			return err
		}
		cum := requested[item.ID].Add(l.Quantity)
		if err := rules.CheckAvailability(item, cum); err != nil {
			return err
		}
		requested[item.ID] = cum
	}
	return nil
}

// applyWithdrawal baixa as linhas já validadas, incrementa o contador e finaliza a D.A. quando o saldo zera.
func applyWithdrawal(a *entity.Admission, in dto.WithdrawalRequest, userID string, now time.Time) *entity.Withdrawal {
	byID := make(map[string]*entity.BalanceItem, len(a.Items))
	for _, it := range a.Items {
		byID[it.ID] = it
	}
	doc := strings.TrimSpace(in.DocumentNumber)
	if doc == "" {
		doc = fmt.Sprintf("DF-%d", now.UnixMilli())
	}
	w := &entity.Withdrawal{
		ID:             uuid.New().String(),
		AdmissionID:    a.ID,
		DocumentNumber: doc,
		WithdrawnAt:    now,
		Notes:          strings.TrimSpace(in.Notes),
		CreatedBy:      userID,
		Items:          make([]*entity.WithdrawalItem, 0, len(in.Items)),
	}
	for _, l := range in.Items {
		item := byID[l.BalanceItemID]
		weight, value := rules.ApplyWithdrawal(item, l.Quantity)
		w.Items = append(w.Items, &entity.WithdrawalItem{
			ID:            uuid.New().String(),
			WithdrawalID:  w.ID,
			BalanceItemID: item.ID,
			ProductCode:   item.ProductCode,
			Quantity:      l.Quantity,
			NetWeight:     weight,
			Value:         value,
		})
	}
	a.TotalWithdrawals++
	a.UpdatedAt = now
	if rules.TotalAvailable(a.Items).IsZero() {
		a.Status = entity.AdmissionStatusFinalized
	}
	return w
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidOperation):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// List devolve o histórico de retiradas da D.A., mais recente primeiro.
func (uc *WithdrawalUseCase) List(ctx context.Context, admissionID string) ([]dto.WithdrawalDTO, error) {
	if _, err := uc.admissionRepo.GetByID(ctx, admissionID); err != nil {
		return nil, err
	}
	list, err := uc.withdrawalRepo.ListByAdmission(ctx, admissionID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WithdrawalDTO, 0, len(list))
	for _, w := range list {
		out = append(out, toWithdrawalDTO(w))
	}
	return out, nil
}

// Receipt gera o comprovante PDF de uma retirada. Devolve os bytes e o nome sugerido do arquivo.
func (uc *WithdrawalUseCase) Receipt(ctx context.Context, admissionID, withdrawalID string) ([]byte, string, error) {
	a, err := uc.admissionRepo.GetByID(ctx, admissionID)
	if err != nil {
		return nil, "", err
	}
	w, err := uc.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return nil, "", err
	}
	if w.AdmissionID != a.ID {
		return nil, "", fmt.Errorf("%w: retirada %s não pertence à D.A. %s", domain.ErrNotFound, withdrawalID, a.DeclarationNumber)
	}
	if uc.receipts == nil {
		return nil, "", fmt.Errorf("gerador de comprovante não configurado")
	}
	pdf, err := uc.receipts.WithdrawalReceipt(ctx, a, w)
	if err != nil {
		return nil, "", fmt.Errorf("gerar comprovante: %w", err)
	}
	return pdf, fmt.Sprintf("retirada-%s.pdf", w.DocumentNumber), nil
}
