package memory

import "github.com/jhoicas/biocol-import-api/internal/infrastructure/seed"

// SeedRepositories repositórios do store no formato esperado pelo seed.
func SeedRepositories(s *Store) seed.Repositories {
	return seed.Repositories{
		References:  NewReferenceRepository(s),
		Shipments:   NewShipmentRepository(s),
		History:     NewStatusHistoryRepository(s),
		Invoices:    NewInvoiceRepository(s),
		Admissions:  NewAdmissionRepository(s),
		Withdrawals: NewWithdrawalRepository(s),
	}
}
