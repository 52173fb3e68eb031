package validity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/internal/domain"
	"github.com/mercadotech/mercado-api/internal/domain/entity"
	"github.com/mercadotech/mercado-api/internal/domain/repository"
	"github.com/mercadotech/mercado-api/pkg/logger"
)

// AlertConfig parámetros de los alertas de vencimiento.
type AlertConfig struct {
	Recipient string
	Channel   string // EMAIL, SMS, IN_APP
}

// LifecycleUseCase gerencia el ciclo de vida de lotes de validade:
// registro, baixa manual y los dos barridos periódicos (baixa automática de
// vencidos y alerta de próximos a vencer). Toda baja de estoque sale por la
// operación remota del ledger, nunca por escritura directa.
type LifecycleUseCase struct {
	lots  repository.LotRepository
	stock StockGateway
	notif Notifier
	alert AlertConfig
	log   *logger.Logger

	// now inyectable para tests de barrido.
	now func() time.Time
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(
	lots repository.LotRepository,
	stock StockGateway,
	notif Notifier,
	alert AlertConfig,
	log *logger.Logger,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		lots:  lots,
		stock: stock,
		notif: notif,
		alert: alert,
		log:   log,
		now:   time.Now,
	}
}

// LotInput entrada para RegisterLot.
type LotInput struct {
	ProductID    string
	LotEntryDate time.Time
	ExpiryDate   time.Time
	Quantity     int
	Status       entity.LotStatus // vacío -> ATIVO
	Note         string
}

// RegisterLot registra un nuevo lote de validade. Status ausente -> ATIVO.
func (uc *LifecycleUseCase) RegisterLot(ctx context.Context, in LotInput) (*entity.ExpirationLot, error) {
	if in.ProductID == "" || in.Quantity <= 0 || in.ExpiryDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.LotStatusAtivo
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	lot := &entity.ExpirationLot{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		LotEntryDate: in.LotEntryDate,
		ExpiryDate:   in.ExpiryDate,
		Quantity:     in.Quantity,
		Status:       status,
		RegisteredAt: uc.now(),
		Note:         in.Note,
	}
	if err := uc.lots.Create(ctx, lot); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("lote_id", lot.ID).
		Str("produto_id", lot.ProductID).
		Str("data_validade", lot.ExpiryDate.Format("2006-01-02")).
		Msg("lote de validade registrado")
	return lot, nil
}

// LotsExpiring lotes ATIVOS con validade en o antes de hoy+days
// (incluye los ya vencidos que siguen ATIVOS).
func (uc *LifecycleUseCase) LotsExpiring(ctx context.Context, days int) ([]*entity.ExpirationLot, error) {
	limit := uc.today().AddDate(0, 0, days)
	return uc.lots.ListByStatusExpiringBefore(ctx, entity.LotStatusAtivo, limit)
}

// WriteOff da baja a un lote por el camino manual: valida el estado
// (solo ATIVO/PENDENTE_BAIXA aceptan baja) y delega en writeOffLot.
// Si la saída remota falla, el status queda como estaba y el caller decide.
func (uc *LifecycleUseCase) WriteOff(ctx context.Context, lotID, reason, note string) (*entity.ExpirationLot, error) {
	lot, err := uc.lots.GetByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrLotNotFound
	}
	if !lot.Status.CanWriteOff() {
		uc.log.Warn().
			Str("lote_id", lotID).
			Str("status", string(lot.Status)).
			Msg("lote fora de ATIVO/PENDENTE_BAIXA, baixa rejeitada")
		return nil, domain.ErrInvalidLotState
	}
	if err := uc.writeOffLot(ctx, lot, reason, note); err != nil {
		return nil, err
	}
	return lot, nil
}

// writeOffLot executa a baixa de um lote já validado (ou selecionado pela
// query do barrido): dispara a saída remota pela quantidade completa e só
// então transiciona para BAIXADO. Se a saída remota falha, o status fica
// como estava.
func (uc *LifecycleUseCase) writeOffLot(ctx context.Context, lot *entity.ExpirationLot, reason, note string) error {
	now := uc.now()
	exitReq := dto.RegisterExitRequest{
		ProductID:  lot.ProductID,
		Quantity:   lot.Quantity,
		ExitKind:   entity.ExitKindPerda,
		OccurredAt: &now,
		Note:       fmt.Sprintf("Baixa de lote de validade ID %s (%s) - %s", lot.ID, reason, note),
	}
	if err := uc.stock.RegisterExit(ctx, exitReq); err != nil {
		uc.log.Error().Err(err).Str("lote_id", lot.ID).Msg("baixa de estoque para lote falhou")
		return fmt.Errorf("%w: %w", domain.ErrWriteOffFailed, err)
	}

	lot.Status = entity.LotStatusBaixado
	lot.Note = fmt.Sprintf("%s | Baixado em %s como %s", lot.Note, now.Format(time.RFC3339), reason)
	if err := uc.lots.UpdateStatus(ctx, lot); err != nil {
		return err
	}
	uc.log.Info().Str("lote_id", lot.ID).Str("motivo", reason).Msg("lote baixado")
	return nil
}

// SweepExpired barrido de vencidos: lotes ATIVOS con validade <= hoje pasan a
// VENCIDO (persistido antes de la baja, para que una falla parcial sea visible)
// y luego se baixan con motivo VENCIMENTO_AUTOMATICO. Fallas por lote se
// registran y no abortan el barrido; un lote cuya baja falla queda VENCIDO y
// no vuelve a ser seleccionado en corridas futuras.
// Devuelve la cantidad de lotes baixados.
func (uc *LifecycleUseCase) SweepExpired(ctx context.Context) (int, error) {
	today := uc.today()
	lots, err := uc.lots.ListByStatusExpiringBefore(ctx, entity.LotStatusAtivo, today)
	if err != nil {
		return 0, err
	}
	if len(lots) == 0 {
		uc.log.Info().Msg("nenhum lote ATIVO vencido encontrado")
		return 0, nil
	}

	uc.log.Info().Int("lotes", len(lots)).Msg("processando baixa de lotes vencidos")
	processed := 0
	for _, lot := range lots {
		// Compare-and-set: uma corrida concorrente do barrido (timer + disparo
		// manual) não pode reclamar o mesmo lote duas vezes.
		claimed, err := uc.lots.TransitionStatus(ctx, lot.ID, entity.LotStatusAtivo, entity.LotStatusVencido)
		if err != nil {
			uc.log.Error().Err(err).Str("lote_id", lot.ID).Msg("falha ao marcar lote como VENCIDO")
			continue
		}
		if !claimed {
			uc.log.Warn().Str("lote_id", lot.ID).Msg("lote já reclamado por outra corrida do barrido")
			continue
		}
		lot.Status = entity.LotStatusVencido
		note := "Produto vencido automaticamente em " + today.Format("2006-01-02")
		if err := uc.writeOffLot(ctx, lot, entity.WriteOffReasonAutoExpired, note); err != nil {
			// O lote permanece VENCIDO para intervenção manual.
			uc.log.Error().Err(err).
				Str("lote_id", lot.ID).
				Str("produto_id", lot.ProductID).
				Msg("falha na baixa automática do lote")
			continue
		}
		processed++
	}
	uc.log.Info().Int("baixados", processed).Msg("barrido de lotes vencidos concluído")
	return processed, nil
}

// SweepNearExpiry barrido de alerta: lotes ATIVOS con validade <= hoje+days,
// excluyendo los ya vencidos (esos pertenecen a SweepExpired). Despacha una
// notificación por lote; fallas de despacho se registran y no abortan el
// barrido; el status de los lotes nunca cambia acá. Devuelve la cantidad de
// alertas despachadas con éxito.
func (uc *LifecycleUseCase) SweepNearExpiry(ctx context.Context, days int) (int, error) {
	today := uc.today()
	limit := today.AddDate(0, 0, days)
	lots, err := uc.lots.ListByStatusExpiringBefore(ctx, entity.LotStatusAtivo, limit)
	if err != nil {
		return 0, err
	}

	alerted := 0
	for _, lot := range lots {
		if lot.ExpiryDate.Before(today) {
			continue // já vencido: tratado pelo barrido de vencidos
		}
		msg := fmt.Sprintf(
			"ALERTA DE VENCIMENTO: o lote %s do produto %s (%d unidades) vencerá em %s. Status: %s.",
			lot.ID, lot.ProductID, lot.Quantity, lot.ExpiryDate.Format("2006-01-02"), lot.Status,
		)
		notif := dto.NotificationRequest{
			Recipient: uc.alert.Recipient,
			Subject:   "ALERTA: produto próximo do vencimento - lote " + lot.ID,
			Message:   msg,
			Type:      uc.alert.Channel,
		}
		if err := uc.notif.Send(ctx, notif); err != nil {
			uc.log.Error().Err(err).Str("lote_id", lot.ID).Msg("falha ao despachar alerta de vencimento")
			continue
		}
		uc.log.Info().Str("lote_id", lot.ID).Msg("alerta de vencimento despachado")
		alerted++
	}
	return alerted, nil
}

// today data de hoje sem componente de hora, no fuso local.
func (uc *LifecycleUseCase) today() time.Time {
	n := uc.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}
