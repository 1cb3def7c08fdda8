// Package memory implementa os repositórios em memória do processo.
// Usado com STORAGE_DRIVER=memory e como dublê nos testes dos use cases.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
)

// Store guarda todos os dados. txMu serializa transações e escritas avulsas;
// mu protege os mapas durante cada operação.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *dataset
}

type dataset struct {
	seq          int64
	order        map[string]int64 // id -> ordem de inserção
	shipments    map[string]*entity.Shipment
	history      map[string]*entity.StatusChange
	invoices     map[string]*entity.Invoice // sem Items
	invoiceItems map[string]*entity.InvoiceItem
	admissions   map[string]*entity.Admission // sem Items
	balanceItems map[string]*entity.BalanceItem
	withdrawals  map[string]*entity.Withdrawal // com Items
	references   map[string]*entity.ReferenceItem
}

func newDataset() *dataset {
	return &dataset{
		order:        make(map[string]int64),
		shipments:    make(map[string]*entity.Shipment),
		history:      make(map[string]*entity.StatusChange),
		invoices:     make(map[string]*entity.Invoice),
		invoiceItems: make(map[string]*entity.InvoiceItem),
		admissions:   make(map[string]*entity.Admission),
		balanceItems: make(map[string]*entity.BalanceItem),
		withdrawals:  make(map[string]*entity.Withdrawal),
		references:   make(map[string]*entity.ReferenceItem),
	}
}

// NewStore cria um store vazio.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

func (d *dataset) track(id string) {
	if _, ok := d.order[id]; ok {
		return
	}
	d.seq++
	d.order[id] = d.seq
}

// sortByOrder ordena ids pela ordem de inserção; desc inverte.
func (d *dataset) sortByOrder(ids []string, desc bool) {
	sort.Slice(ids, func(i, j int) bool {
		if desc {
			return d.order[ids[i]] > d.order[ids[j]]
		}
		return d.order[ids[i]] < d.order[ids[j]]
	})
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	c.seq = d.seq
	for k, v := range d.order {
		c.order[k] = v
	}
	for k, v := range d.shipments {
		c.shipments[k] = cloneShipment(v)
	}
	for k, v := range d.history {
		h := *v
		c.history[k] = &h
	}
	for k, v := range d.invoices {
		c.invoices[k] = cloneInvoiceHeader(v)
	}
	for k, v := range d.invoiceItems {
		it := *v
		c.invoiceItems[k] = &it
	}
	for k, v := range d.admissions {
		c.admissions[k] = cloneAdmissionHeader(v)
	}
	for k, v := range d.balanceItems {
		it := *v
		c.balanceItems[k] = &it
	}
	for k, v := range d.withdrawals {
		c.withdrawals[k] = cloneWithdrawal(v)
	}
	for k, v := range d.references {
		r := *v
		c.references[k] = &r
	}
	return c
}

func (s *Store) read(fn func(d *dataset) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// write aplica fn sob lock exclusivo. Fora de transação também segura txMu
// para não intercalar com uma transação em andamento.
func (s *Store) write(inTx bool, fn func(d *dataset) error) error {
	if !inTx {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// Reset apaga todos os dados.
func (s *Store) Reset() {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	s.data = newDataset()
	s.mu.Unlock()
}

// TxRunner executa callbacks de forma serializada; em erro restaura o snapshot anterior.
type TxRunner struct {
	s *Store
}

// NewTxRunner constrói o runner sobre o store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) run(ctx context.Context, fn func() error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.RLock()
	snapshot := r.s.data.clone()
	r.s.mu.RUnlock()

	if err := fn(); err != nil {
		r.s.mu.Lock()
		r.s.data = snapshot
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// Run transação com os repositórios do entreposto.
func (r *TxRunner) Run(ctx context.Context, fn func(
	admissionRepo repository.AdmissionRepository,
	withdrawalRepo repository.WithdrawalRepository,
	shipmentRepo repository.ShipmentRepository,
	historyRepo repository.StatusHistoryRepository,
) error) error {
	return r.run(ctx, func() error {
		return fn(
			&AdmissionRepo{s: r.s, inTx: true},
			&WithdrawalRepo{s: r.s, inTx: true},
			&ShipmentRepo{s: r.s, inTx: true},
			&StatusHistoryRepo{s: r.s, inTx: true},
		)
	})
}

// RunShipment transação com embarque e histórico de status.
func (r *TxRunner) RunShipment(ctx context.Context, fn func(
	shipmentRepo repository.ShipmentRepository,
	historyRepo repository.StatusHistoryRepository,
) error) error {
	return r.run(ctx, func() error {
		return fn(&ShipmentRepo{s: r.s, inTx: true}, &StatusHistoryRepo{s: r.s, inTx: true})
	})
}

// RunInvoice transação com invoice e itens.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	return r.run(ctx, func() error {
		return fn(&InvoiceRepo{s: r.s, inTx: true})
	})
}
