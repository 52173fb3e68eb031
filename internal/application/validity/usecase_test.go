package validity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/internal/domain"
	"github.com/mercadotech/mercado-api/internal/domain/entity"
	"github.com/mercadotech/mercado-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeLotRepo struct {
	lots map[string]*entity.ExpirationLot
	// historial de status persistidos por lote, para asertar la transición
	// intermedia VENCIDO antes de BAIXADO
	statusLog map[string][]entity.LotStatus

	failUpdate bool
	// lotes cujo claim ATIVO->VENCIDO devolve false, simulando outra corrida
	// do barrido chegando primeiro
	claimLost map[string]bool
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{
		lots:      make(map[string]*entity.ExpirationLot),
		statusLog: make(map[string][]entity.LotStatus),
	}
}

func (r *fakeLotRepo) Create(_ context.Context, lot *entity.ExpirationLot) error {
	cp := *lot
	r.lots[lot.ID] = &cp
	return nil
}

func (r *fakeLotRepo) GetByID(_ context.Context, id string) (*entity.ExpirationLot, error) {
	lot, ok := r.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *lot
	return &cp, nil
}

func (r *fakeLotRepo) ListByStatusExpiringBefore(_ context.Context, status entity.LotStatus, limit time.Time) ([]*entity.ExpirationLot, error) {
	var out []*entity.ExpirationLot
	for _, lot := range r.lots {
		if lot.Status == status && !lot.ExpiryDate.After(limit) {
			cp := *lot
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLotRepo) UpdateStatus(_ context.Context, lot *entity.ExpirationLot) error {
	if r.failUpdate {
		return errors.New("update falhou")
	}
	if _, ok := r.lots[lot.ID]; !ok {
		return errors.New("lote inexistente")
	}
	cp := *lot
	r.lots[lot.ID] = &cp
	r.statusLog[lot.ID] = append(r.statusLog[lot.ID], lot.Status)
	return nil
}

func (r *fakeLotRepo) TransitionStatus(_ context.Context, id string, from, to entity.LotStatus) (bool, error) {
	if r.claimLost[id] {
		return false, nil
	}
	lot, ok := r.lots[id]
	if !ok || lot.Status != from {
		return false, nil
	}
	lot.Status = to
	r.statusLog[id] = append(r.statusLog[id], to)
	return true, nil
}

type fakeStockGateway struct {
	calls []dto.RegisterExitRequest
	err   error
}

func (g *fakeStockGateway) RegisterExit(_ context.Context, in dto.RegisterExitRequest) error {
	g.calls = append(g.calls, in)
	return g.err
}

type fakeNotifier struct {
	sent []dto.NotificationRequest
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, in dto.NotificationRequest) error {
	n.sent = append(n.sent, in)
	return n.err
}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func buildUseCase(repo *fakeLotRepo, gw *fakeStockGateway, notif *fakeNotifier) *LifecycleUseCase {
	uc := NewLifecycleUseCase(repo, gw, notif, AlertConfig{
		Recipient: "gerente@mercadotech.com.br",
		Channel:   "EMAIL",
	}, logger.New(logger.Config{Level: "error"}))
	uc.now = func() time.Time { return testNow }
	return uc
}

func seedLot(repo *fakeLotRepo, id string, status entity.LotStatus, expiry time.Time, qty int) {
	repo.lots[id] = &entity.ExpirationLot{
		ID:           id,
		ProductID:    "produto-1",
		LotEntryDate: expiry.AddDate(0, -1, 0),
		ExpiryDate:   expiry,
		Quantity:     qty,
		Status:       status,
		RegisteredAt: testNow.AddDate(0, -1, 0),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro e baixa manual
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterLot_StatusPadraoAtivo(t *testing.T) {
	repo := newFakeLotRepo()
	uc := buildUseCase(repo, &fakeStockGateway{}, &fakeNotifier{})

	lot, err := uc.RegisterLot(context.Background(), LotInput{
		ProductID:    "produto-1",
		LotEntryDate: day(2026, 3, 1),
		ExpiryDate:   day(2026, 4, 1),
		Quantity:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusAtivo, lot.Status)
	assert.Equal(t, testNow, lot.RegisteredAt)
	assert.NotEmpty(t, lot.ID)
}

func TestRegisterLot_StatusInvalidoRejeitado(t *testing.T) {
	uc := buildUseCase(newFakeLotRepo(), &fakeStockGateway{}, &fakeNotifier{})

	_, err := uc.RegisterLot(context.Background(), LotInput{
		ProductID:    "produto-1",
		LotEntryDate: day(2026, 3, 1),
		ExpiryDate:   day(2026, 4, 1),
		Quantity:     10,
		Status:       "QUALQUER",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWriteOff_LoteNaoEncontrado(t *testing.T) {
	uc := buildUseCase(newFakeLotRepo(), &fakeStockGateway{}, &fakeNotifier{})

	_, err := uc.WriteOff(context.Background(), "nao-existe", entity.WriteOffReasonManual, "perda")
	assert.ErrorIs(t, err, domain.ErrLotNotFound)
}

func TestWriteOff_AtivoTransicionaParaBaixado(t *testing.T) {
	repo := newFakeLotRepo()
	gw := &fakeStockGateway{}
	seedLot(repo, "lote-1", entity.LotStatusAtivo, day(2026, 3, 5), 12)
	uc := buildUseCase(repo, gw, &fakeNotifier{})

	lot, err := uc.WriteOff(context.Background(), "lote-1", entity.WriteOffReasonManual, "perda manual")
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusBaixado, lot.Status)
	assert.Contains(t, lot.Note, "Baixado em")
	assert.Contains(t, lot.Note, entity.WriteOffReasonManual)
	assert.Equal(t, entity.LotStatusBaixado, repo.lots["lote-1"].Status)

	require.Len(t, gw.calls, 1)
	assert.Equal(t, "produto-1", gw.calls[0].ProductID)
	assert.Equal(t, 12, gw.calls[0].Quantity)
	assert.Equal(t, entity.ExitKindPerda, gw.calls[0].ExitKind)
}

// Estados fora de ATIVO/PENDENTE_BAIXA rejeitam a baixa manual; nenhuma saída
// remota é disparada.
func TestWriteOff_StatusInvalidoRejeitado(t *testing.T) {
	for _, status := range []entity.LotStatus{entity.LotStatusVencido, entity.LotStatusBaixado} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeLotRepo()
			gw := &fakeStockGateway{}
			seedLot(repo, "lote-1", status, day(2026, 3, 5), 12)
			uc := buildUseCase(repo, gw, &fakeNotifier{})

			_, err := uc.WriteOff(context.Background(), "lote-1", entity.WriteOffReasonManual, "perda")
			assert.ErrorIs(t, err, domain.ErrInvalidLotState)
			assert.Empty(t, gw.calls, "nenhuma saída remota deve ser disparada")
			assert.Equal(t, status, repo.lots["lote-1"].Status, "status não deve mudar")
		})
	}
}

// Falha da saída remota: o lote fica no status em que estava e o erro envolve
// ErrWriteOffFailed.
func TestWriteOff_FalhaRemotaNaoTransiciona(t *testing.T) {
	repo := newFakeLotRepo()
	gw := &fakeStockGateway{err: domain.ErrRemoteUnavailable}
	seedLot(repo, "lote-1", entity.LotStatusAtivo, day(2026, 3, 5), 12)
	uc := buildUseCase(repo, gw, &fakeNotifier{})

	_, err := uc.WriteOff(context.Background(), "lote-1", entity.WriteOffReasonManual, "perda")
	assert.ErrorIs(t, err, domain.ErrWriteOffFailed)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.Equal(t, entity.LotStatusAtivo, repo.lots["lote-1"].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Barrido de vencidos
// ──────────────────────────────────────────────────────────────────────────────

// Caminho feliz: lote ATIVO com validade hoje passa por VENCIDO e termina
// BAIXADO, com exatamente uma saída remota pela quantidade completa.
func TestSweepExpired_AtivoVencidoBaixado(t *testing.T) {
	repo := newFakeLotRepo()
	gw := &fakeStockGateway{}
	seedLot(repo, "lote-1", entity.LotStatusAtivo, day(2026, 3, 10), 7)
	uc := buildUseCase(repo, gw, &fakeNotifier{})

	count, err := uc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Equal(t, entity.LotStatusBaixado, repo.lots["lote-1"].Status)
	assert.Equal(t,
		[]entity.LotStatus{entity.LotStatusVencido, entity.LotStatusBaixado},
		repo.statusLog["lote-1"],
		"o estado intermediário VENCIDO deve ser persistido antes de BAIXADO")

	require.Len(t, gw.calls, 1, "exatamente uma saída remota")
	assert.Equal(t, 7, gw.calls[0].Quantity)
	assert.Equal(t, entity.ExitKindPerda, gw.calls[0].ExitKind)
	assert.Contains(t, gw.calls[0].Note, entity.WriteOffReasonAutoExpired)
}

func TestSweepExpired_IgnoraNaoVencidos(t *testing.T) {
	repo := newFakeLotRepo()
	gw := &fakeStockGateway{}
	seedLot(repo, "futuro", entity.LotStatusAtivo, day(2026, 3, 20), 5)
	uc := buildUseCase(repo, gw, &fakeNotifier{})

	count, err := uc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, gw.calls)
	assert.Equal(t, entity.LotStatusAtivo, repo.lots["futuro"].Status)
}

// Falha remota durante o barrido: o lote fica VENCIDO, o barrido continua com
// os demais e o contador só conta os baixados.
func TestSweepExpired_FalhaRemotaDeixaVencido(t *testing.T) {
	repo := newFakeLotRepo()
	gw := &fakeStockGateway{err: errors.New("stock-service fora do ar")}
	seedLot(repo, "lote-1", entity.LotStatusAtivo, day(2026, 3, 9), 7)
	uc := buildUseCase(repo, gw, &fakeNotifier{})

	count, err := uc.SweepExpired(context.Background())
	require.NoError(t, err, "falhas por lote não abortam o barrido")
	assert.Zero(t, count)
	assert.Equal(t, entity.LotStatusVencido, repo.lots["lote-1"].Status)
}

// Regressão: um lote preso em VENCIDO após uma baixa falha NÃO é selecionado
// por corridas futuras do barrido (a query busca só ATIVOS) e a saída remota
// não é repetida. Comportamento fixado até redesenho explícito.
func TestSweepExpired_LoteVencidoNaoReprocessado(t *testing.T) {
	repo := newFakeLotRepo()
	gw := &fakeStockGateway{err: errors.New("stock-service fora do ar")}
	seedLot(repo, "lote-1", entity.LotStatusAtivo, day(2026, 3, 9), 7)
	uc := buildUseCase(repo, gw, &fakeNotifier{})

	_, err := uc.SweepExpired(context.Background())
	require.NoError(t, err)
	require.Equal(t, entity.LotStatusVencido, repo.lots["lote-1"].Status)
	require.Len(t, gw.calls, 1)

	// Segunda corrida, agora com o stock-service saudável: o lote preso em
	// VENCIDO fica de fora mesmo assim.
	gw.err = nil
	count, err := uc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, gw.calls, 1, "a saída remota não deve ser repetida")
	assert.Equal(t, entity.LotStatusVencido, repo.lots["lote-1"].Status)
}

// Disparo manual e timer podem correr juntos: um lote cujo claim
// ATIVO->VENCIDO foi perdido para a outra corrida é pulado sem saída remota.
func TestSweepExpired_ClaimPerdidoPulaLote(t *testing.T) {
	repo := newFakeLotRepo()
	gw := &fakeStockGateway{}
	seedLot(repo, "disputado", entity.LotStatusAtivo, day(2026, 3, 10), 7)
	repo.claimLost = map[string]bool{"disputado": true}
	uc := buildUseCase(repo, gw, &fakeNotifier{})

	count, err := uc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, gw.calls, "o lote pertence à corrida que venceu o claim")
}

// ──────────────────────────────────────────────────────────────────────────────
// Barrido de alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestSweepNearExpiry_DespachaAlerta(t *testing.T) {
	repo := newFakeLotRepo()
	notif := &fakeNotifier{}
	seedLot(repo, "lote-1", entity.LotStatusAtivo, day(2026, 3, 14), 9)
	uc := buildUseCase(repo, &fakeStockGateway{}, notif)

	count, err := uc.SweepNearExpiry(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.Len(t, notif.sent, 1)
	sent := notif.sent[0]
	assert.Equal(t, "gerente@mercadotech.com.br", sent.Recipient)
	assert.Equal(t, "EMAIL", sent.Type)
	assert.Contains(t, sent.Subject, "lote-1")
	assert.Contains(t, sent.Message, "produto-1")
	assert.Contains(t, sent.Message, "2026-03-14")
	assert.Contains(t, sent.Message, "9 unidades")
}

// Lote vencido ontem: entra no barrido de vencidos mas fica fora do alerta.
func TestSweepNearExpiry_ExcluiJaVencidos(t *testing.T) {
	repo := newFakeLotRepo()
	notif := &fakeNotifier{}
	seedLot(repo, "vencido-ontem", entity.LotStatusAtivo, day(2026, 3, 9), 3)
	seedLot(repo, "vence-amanha", entity.LotStatusAtivo, day(2026, 3, 11), 4)
	uc := buildUseCase(repo, &fakeStockGateway{}, notif)

	count, err := uc.SweepNearExpiry(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, notif.sent, 1)
	assert.Contains(t, notif.sent[0].Subject, "vence-amanha")

	// O status nunca muda neste barrido.
	assert.Equal(t, entity.LotStatusAtivo, repo.lots["vencido-ontem"].Status)
	assert.Equal(t, entity.LotStatusAtivo, repo.lots["vence-amanha"].Status)
}

func TestSweepNearExpiry_FalhaDeDespachoNaoAborta(t *testing.T) {
	repo := newFakeLotRepo()
	notif := &fakeNotifier{err: errors.New("notification-service fora do ar")}
	seedLot(repo, "lote-1", entity.LotStatusAtivo, day(2026, 3, 12), 2)
	uc := buildUseCase(repo, &fakeStockGateway{}, notif)

	count, err := uc.SweepNearExpiry(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, count, "despacho falho não conta como alertado")
	assert.Equal(t, entity.LotStatusAtivo, repo.lots["lote-1"].Status)
}
