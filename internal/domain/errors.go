package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los cuatro primeros son errores de validación (el caller recibe 4xx y no reintenta);
// los tres últimos son fallas remotas (5xx, los barridos las capturan por ítem).
var (
	ErrProductNotFound   = errors.New("produto não encontrado")
	ErrInsufficientStock = errors.New("saldo insuficiente")
	ErrLotNotFound       = errors.New("lote de validade não encontrado")
	ErrInvalidLotState   = errors.New("lote em status inválido para a operação")
	ErrInvalidInput      = errors.New("entrada inválida")

	ErrRemoteUnavailable = errors.New("serviço remoto indisponível")
	ErrWriteOffFailed    = errors.New("falha na baixa do lote")
	ErrSaleRollback      = errors.New("falha na baixa de estoque, venda revertida")
)
