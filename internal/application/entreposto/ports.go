package entreposto

import (
	"context"

	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

// TxRunner executa fn numa transação, passando repositórios atados a ela.
// Commit se fn devolver nil; rollback caso contrário.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		admissionRepo repository.AdmissionRepository,
		withdrawalRepo repository.WithdrawalRepository,
		shipmentRepo repository.ShipmentRepository,
		historyRepo repository.StatusHistoryRepository,
	) error) error
}

// Metrics contadores de negócio do entreposto.
type Metrics interface {
	AdmissionCreated(warehouseType string)
	WithdrawalAccepted()
	WithdrawalRejected(reason string)
	AdmissionFinalized()
}

// ReceiptGenerator gera o comprovante de retirada em PDF.
type ReceiptGenerator interface {
	WithdrawalReceipt(ctx context.Context, admission *entity.Admission, withdrawal *entity.Withdrawal) ([]byte, error)
}

type nopMetrics struct{}

func (nopMetrics) AdmissionCreated(string)   {}
func (nopMetrics) WithdrawalAccepted()       {}
func (nopMetrics) WithdrawalRejected(string) {}
func (nopMetrics) AdmissionFinalized()       {}

// NopMetrics implementação vazia para testes e para quando /metrics está desligado.
var NopMetrics Metrics = nopMetrics{}
