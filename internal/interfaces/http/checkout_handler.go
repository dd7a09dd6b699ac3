package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ruanmp/livraria-pos/internal/application/checkout"
	"github.com/ruanmp/livraria-pos/internal/application/dto"
	"github.com/ruanmp/livraria-pos/internal/domain"
)

// CheckoutHandler trata a finalização da venda e a consulta/cupom de
// vendas gravadas.
type CheckoutHandler struct {
	finalize *checkout.FinalizeSaleUseCase
	receipt  *checkout.ReceiptUseCase
	carts    *checkout.CartRegistry
}

// NewCheckoutHandler constrói o handler de checkout.
func NewCheckoutHandler(finalize *checkout.FinalizeSaleUseCase, receipt *checkout.ReceiptUseCase, carts *checkout.CartRegistry) *CheckoutHandler {
	return &CheckoutHandler{finalize: finalize, receipt: receipt, carts: carts}
}

// Finalize godoc
// @Summary      Finalizar a venda do carrinho corrente
// @Description  Grava cabeçalho, itens e baixas de estoque numa transação única.
//
//	Reenviar a mesma idempotency_key devolve a venda original sem
//	gravar nada de novo.
//
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "payment_method, general_discount_amount, general_discount_kind, idempotency_key"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Finalize(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return unauthorized(c)
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}

	cart := h.carts.Get(sess.SessionID)
	out, err := h.finalize.FinalizeSale(c.Context(), sess, cart, in)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "o carrinho está vazio"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "estoque insuficiente para um dos itens"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	// Venda gravada: o carrinho da sessão recomeça vazio.
	cart.Clear()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSale godoc
// @Summary      Consultar uma venda finalizada
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *CheckoutHandler) GetSale(c *fiber.Ctx) error {
	out, err := h.finalize.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venda não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DownloadReceipt godoc
// @Summary      Cupom (PDF) de uma venda finalizada
// @Tags         checkout
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *CheckoutHandler) DownloadReceipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.receipt.DownloadReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venda não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
