package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/internal/domain/repository"
	"github.com/jhoicas/biocol-import-api/pkg/clock"
)

// ReferenceUseCase cadastros chave-valor.
type ReferenceUseCase struct {
	repo  repository.ReferenceRepository
	clock clock.Clock
}

func NewReferenceUseCase(repo repository.ReferenceRepository, clk clock.Clock) *ReferenceUseCase {
	return &ReferenceUseCase{repo: repo, clock: clk}
}

func checkKind(kind string) error {
	if !entity.IsValidReferenceKind(kind) {
		return fmt.Errorf("%w: tipo de cadastro desconhecido %q", domain.ErrInvalidInput, kind)
	}
	return nil
}

// List ordenado por nome; includeInactive inclui os desativados.
func (uc *ReferenceUseCase) List(ctx context.Context, kind string, includeInactive bool) ([]dto.ReferenceDTO, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, kind, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReferenceDTO, 0, len(list))
	for _, r := range list {
		out = append(out, toReferenceDTO(r))
	}
	return out, nil
}

func (uc *ReferenceUseCase) Create(ctx context.Context, kind string, in dto.ReferenceRequest) (*dto.ReferenceDTO, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	code, name := strings.TrimSpace(in.Code), strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: código e nome são obrigatórios", domain.ErrInvalidInput)
	}
	if err := uc.ensureUniqueCode(ctx, kind, code, ""); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	item := &entity.ReferenceItem{
		ID:        uuid.New().String(),
		Kind:      kind,
		Code:      code,
		Name:      name,
		Details:   strings.TrimSpace(in.Details),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	out := toReferenceDTO(item)
	return &out, nil
}

// Update campos vazios mantêm o valor atual.
func (uc *ReferenceUseCase) Update(ctx context.Context, kind, id string, in dto.ReferenceRequest) (*dto.ReferenceDTO, error) {
	item, err := uc.get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if code := strings.TrimSpace(in.Code); code != "" && code != item.Code {
		if err := uc.ensureUniqueCode(ctx, kind, code, id); err != nil {
			return nil, err
		}
		item.Code = code
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		item.Name = name
	}
	if in.Details != "" {
		item.Details = strings.TrimSpace(in.Details)
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	item.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	out := toReferenceDTO(item)
	return &out, nil
}

// Deactivate desativa sem apagar; embarques antigos continuam apontando para o registro.
func (uc *ReferenceUseCase) Deactivate(ctx context.Context, kind, id string) error {
	item, err := uc.get(ctx, kind, id)
	if err != nil {
		return err
	}
	if !item.Active {
		return nil
	}
	item.Active = false
	item.UpdatedAt = uc.clock.Now()
	return uc.repo.Update(ctx, item)
}

func (uc *ReferenceUseCase) get(ctx context.Context, kind, id string) (*entity.ReferenceItem, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Kind != kind {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, id)
	}
	return item, nil
}

func (uc *ReferenceUseCase) ensureUniqueCode(ctx context.Context, kind, code, excludeID string) error {
	exists, err := uc.repo.ExistsCode(ctx, kind, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: código %s já cadastrado em %s", domain.ErrConflict, code, kind)
	}
	return nil
}

func toReferenceDTO(r *entity.ReferenceItem) dto.ReferenceDTO {
	return dto.ReferenceDTO{
		ID:        r.ID,
		Kind:      r.Kind,
		Code:      r.Code,
		Name:      r.Name,
		Details:   r.Details,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
