package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ruanmp/livraria-pos/internal/application/dto"
	"github.com/ruanmp/livraria-pos/internal/application/stock"
	"github.com/ruanmp/livraria-pos/internal/domain"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
)

// StockHandler trata movimentações, ajustes e listagem do livro-razão.
type StockHandler struct {
	uc        *stock.UseCase
	pageLimit int // tamanho de página das listagens quando não informado
}

// NewStockHandler constrói o handler de estoque.
func NewStockHandler(uc *stock.UseCase, pageLimit int) *StockHandler {
	return &StockHandler{uc: uc, pageLimit: pageLimit}
}

// RegisterMovement godoc
// @Summary      Registrar movimento de estoque
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "book_id, type (entrada | saida), quantity, reason, notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return unauthorized(c)
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mov, err := h.uc.RecordMovement(c.Context(), sess, stock.MovementInput{
		BookID:   in.BookID,
		Type:     in.Type,
		Quantity: in.Quantity,
		Reason:   in.Reason,
		Notes:    in.Notes,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov, mov.SaleID))
}

// Adjust godoc
// @Summary      Ajustar estoque pela contagem física
// @Description  Informa a contagem; o serviço calcula a diferença e lança
//
//	entrada ou saída com motivo ajuste. Contagem igual ao estoque
//	atual devolve 409.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "book_id, new_quantity, notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return unauthorized(c)
	}
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mov, err := h.uc.AdjustInventory(c.Context(), sess, in.BookID, in.NewQuantity, in.Notes)
	if err != nil {
		if errors.Is(err, domain.ErrNoAdjustmentNeeded) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_ADJUSTMENT_NEEDED", Message: "a contagem é igual ao estoque atual"})
		}
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov, mov.SaleID))
}

// Restock godoc
// @Summary      Repor estoque
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockRequest  true  "book_id, quantity, notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/restock [post]
func (h *StockHandler) Restock(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return unauthorized(c)
	}
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mov, err := h.uc.Restock(c.Context(), sess, in.BookID, in.Quantity, in.Notes)
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov, mov.SaleID))
}

// ListMovements godoc
// @Summary      Listar movimentos do livro-razão
// @Description  Mais recentes primeiro; cada saída de venda vem anotada com o
//
//	ID da venda de origem.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        book_id  query  string  false  "Filtrar por livro"
// @Param        limit    query  int     false  "Máximo de movimentos (padrão 100)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", h.pageLimit)
	bookID := c.Query("book_id")

	var (
		movs []stock.MovementWithSale
		err  error
	)
	if bookID != "" {
		movs, err = h.uc.ListMovementsForBook(c.Context(), bookID, limit)
	} else {
		movs, err = h.uc.ListAllMovements(c.Context(), limit)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m.Movement, m.SaleID))
	}
	return c.JSON(out)
}

func toMovementResponse(m *entity.StockMovement, saleID string) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		BookID:      m.BookID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		Notes:       m.Notes,
		SaleID:      saleID,
		Responsible: m.Responsible,
		CreatedAt:   m.CreatedAt,
	}
}

func stockError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrInvalidQuantity) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "livro não encontrado"})
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "estoque insuficiente"})
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		return unauthorized(c)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
