package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ruanmp/livraria-pos/internal/application/dto"
	"github.com/ruanmp/livraria-pos/internal/domain"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/internal/domain/repository"
)

// BookHandler trata o catálogo de livros.
type BookHandler struct {
	repo repository.BookRepository
}

// NewBookHandler constrói o handler do catálogo.
func NewBookHandler(repo repository.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

// Create godoc
// @Summary      Cadastrar livro
// @Tags         books
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookRequest  true  "isbn, title, author, publisher, price, quantity"
// @Success      201   {object}  dto.BookResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.ISBN == "" || in.Title == "" || in.Author == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "isbn, title e author são obrigatórios"})
	}
	if in.Price.IsNegative() || in.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "price e quantity não podem ser negativos"})
	}
	now := time.Now()
	book := &entity.Book{
		ID:        uuid.New().String(),
		ISBN:      in.ISBN,
		Title:     in.Title,
		Author:    in.Author,
		Publisher: in.Publisher,
		Price:     in.Price,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.repo.Create(book); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ISBN_EXISTS", Message: "o ISBN já está cadastrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toBookResponse(book))
}

// GetByID godoc
// @Summary      Consultar livro
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do livro"
// @Success      200  {object}  dto.BookResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	book, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if book == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "livro não encontrado"})
	}
	return c.JSON(toBookResponse(book))
}

// List godoc
// @Summary      Listar livros
// @Tags         books
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de livros (padrão 50)"
// @Param        offset  query  int  false  "Deslocamento"
// @Success      200  {array}  dto.BookResponse
// @Router       /api/books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := c.QueryInt("offset")
	if offset < 0 {
		offset = 0
	}
	books, err := h.repo.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	return c.JSON(out)
}

func toBookResponse(b *entity.Book) dto.BookResponse {
	return dto.BookResponse{
		ID:        b.ID,
		ISBN:      b.ISBN,
		Title:     b.Title,
		Author:    b.Author,
		Publisher: b.Publisher,
		Price:     b.Price,
		Quantity:  b.Quantity,
		CreatedAt: b.CreatedAt,
	}
}
