package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/ruanmp/livraria-pos/internal/application/checkout"
	"github.com/ruanmp/livraria-pos/internal/application/dto"
	"github.com/ruanmp/livraria-pos/internal/domain"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/internal/domain/repository"
	"github.com/ruanmp/livraria-pos/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: cadastro, login e logout.
// O login abre a sessão de caixa (SessionID novo no token); o logout faz o
// teardown, descartando o carrinho da sessão no registro.
type AuthUseCase struct {
	userRepo repository.UserRepository
	carts    *checkout.CartRegistry
	jwtCfg   JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, carts *checkout.CartRegistry, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, carts: carts, jwtCfg: jwtCfg}
}

// RegisterUser cria um operador: hasheia a senha com bcrypt e persiste.
// Devolve ErrEmailAlreadyExists se o email já estiver cadastrado.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCaixa
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/senha, abre uma sessão de caixa nova e devolve o
// token + operador.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	sessionID := uuid.New().String()
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, sessionID, user.Name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		SessionID: sessionID,
		User:      *toUserResponse(user),
	}, nil
}

// Logout encerra a sessão de caixa: descarta o carrinho associado.
func (uc *AuthUseCase) Logout(sessionID string) {
	if sessionID != "" {
		uc.carts.Drop(sessionID)
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
