package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ruanmp/livraria-pos/internal/application/checkout"
	"github.com/ruanmp/livraria-pos/internal/application/dto"
	"github.com/ruanmp/livraria-pos/internal/domain/pos"
	"github.com/ruanmp/livraria-pos/internal/domain/repository"
	"github.com/ruanmp/livraria-pos/pkg/money"
)

// CartHandler trata o carrinho da sessão de caixa corrente.
// O carrinho vive em memória, um por sessão; os totais devolvidos são
// sempre os derivados do estado atual, nunca fornecidos pelo cliente.
type CartHandler struct {
	carts        *checkout.CartRegistry
	bookRepo     repository.BookRepository
	customerRepo repository.CustomerRepository
}

// NewCartHandler constrói o handler do carrinho.
func NewCartHandler(carts *checkout.CartRegistry, bookRepo repository.BookRepository, customerRepo repository.CustomerRepository) *CartHandler {
	return &CartHandler{carts: carts, bookRepo: bookRepo, customerRepo: customerRepo}
}

// Get godoc
// @Summary      Estado atual do carrinho
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return unauthorized(c)
	}
	return c.JSON(toCartResponse(h.carts.Get(sess.SessionID)))
}

// AddItem godoc
// @Summary      Adicionar livro ao carrinho
// @Description  Se o livro já está no carrinho, incrementa a quantidade.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddItemRequest  true  "book_id"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return unauthorized(c)
	}
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil || in.BookID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "book_id é obrigatório"})
	}
	book, err := h.bookRepo.GetByID(in.BookID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if book == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "livro não encontrado"})
	}
	cart := h.carts.Get(sess.SessionID)
	cart.AddItem(book)
	return c.JSON(toCartResponse(cart))
}

// RemoveItem godoc
// @Summary      Remover livro do carrinho
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        bookId  path  string  true  "ID do livro"
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{bookId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return unauthorized(c)
	}
	cart := h.carts.Get(sess.SessionID)
	cart.RemoveItem(c.Params("bookId"))
	return c.JSON(toCartResponse(cart))
}

// UpdateQuantity godoc
// @Summary      Alterar quantidade de um item
// @Description  Quantidade zero ou negativa remove o item.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        bookId  path  string  true  "ID do livro"
// @Param        body    body  dto.UpdateQuantityRequest  true  "quantity"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{bookId}/quantity [put]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return unauthorized(c)
	}
	var in dto.UpdateQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	cart := h.carts.Get(sess.SessionID)
	cart.UpdateQuantity(c.Params("bookId"), in.Quantity)
	return c.JSON(toCartResponse(cart))
}

// UpdateDiscount godoc
// @Summary      Aplicar desconto a um item
// @Description  kind "percentage" converte para reais na hora; a linha guarda sempre valor em reais.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        bookId  path  string  true  "ID do livro"
// @Param        body    body  dto.UpdateDiscountRequest  true  "amount, kind (fixed | percentage)"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{bookId}/discount [put]
func (h *CartHandler) UpdateDiscount(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return unauthorized(c)
	}
	var in dto.UpdateDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	kind := in.Kind
	if kind == "" {
		kind = pos.DiscountKindFixed
	}
	if kind != pos.DiscountKindFixed && kind != pos.DiscountKindPercentage {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind deve ser fixed ou percentage"})
	}
	cart := h.carts.Get(sess.SessionID)
	cart.UpdateDiscount(c.Params("bookId"), in.Amount, kind)
	return c.JSON(toCartResponse(cart))
}

// SetCustomer godoc
// @Summary      Identificar o cliente da venda
// @Description  customer_id vazio volta para consumidor final.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetCustomerRequest  true  "customer_id"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/customer [put]
func (h *CartHandler) SetCustomer(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return unauthorized(c)
	}
	var in dto.SetCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	cart := h.carts.Get(sess.SessionID)
	if in.CustomerID == "" {
		cart.SetCustomer(nil)
		return c.JSON(toCartResponse(cart))
	}
	customer, err := h.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if customer == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente não encontrado"})
	}
	cart.SetCustomer(customer)
	return c.JSON(toCartResponse(cart))
}

// Clear godoc
// @Summary      Esvaziar o carrinho
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return unauthorized(c)
	}
	cart := h.carts.Get(sess.SessionID)
	cart.Clear()
	return c.JSON(toCartResponse(cart))
}

func toCartResponse(cart *pos.Cart) dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(cart.Items()))
	for _, li := range cart.Items() {
		items = append(items, dto.CartItemResponse{
			BookID:    li.BookID,
			Title:     li.Title,
			UnitPrice: li.UnitPrice,
			Quantity:  li.Quantity,
			Discount:  li.EffectiveDiscount(),
			LineTotal: li.LineTotal(),
		})
	}
	customerID := ""
	if cust := cart.Customer(); cust != nil {
		customerID = cust.ID
	}
	return dto.CartResponse{
		Items:          items,
		CustomerID:     customerID,
		Subtotal:       money.ToCurrency(cart.Subtotal()),
		DiscountTotal:  money.ToCurrency(cart.DiscountTotal()),
		Total:          money.ToCurrency(cart.Total()),
		TotalFormatted: money.FormatBRL(cart.Total()),
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}
