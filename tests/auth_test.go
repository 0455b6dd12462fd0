package tests

import (
	"context"
	"testing"

	"hostalpos/internal/apierror"
	"hostalpos/internal/config"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "clave-de-prueba",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUsuario(t *testing.T, repo *memUsuarioRepo, username, password, rol string, activo bool) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		Username:     username,
		Nombre:       username,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       activo,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	repo := newMemUsuarioRepo()
	seedUsuario(t, repo, "maria", "secreto123", model.RolEmpleado, true)
	svc := service.NewAuthService(repo, testConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "maria", resp.User.Username)
	assert.Equal(t, model.RolEmpleado, resp.User.Rol)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	repo := newMemUsuarioRepo()
	seedUsuario(t, repo, "maria", "secreto123", model.RolEmpleado, true)
	svc := service.NewAuthService(repo, testConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "otra"})
	require.Error(t, err)
	assert.True(t, apierror.IsValidation(err))
}

func TestLoginUsuarioInactivo(t *testing.T) {
	repo := newMemUsuarioRepo()
	seedUsuario(t, repo, "maria", "secreto123", model.RolEmpleado, false)
	svc := service.NewAuthService(repo, testConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreto123"})
	require.Error(t, err)
	assert.True(t, apierror.IsValidation(err))
}

func TestLoginUsuarioInexistente(t *testing.T) {
	svc := service.NewAuthService(newMemUsuarioRepo(), testConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	require.Error(t, err)
	assert.True(t, apierror.IsValidation(err))
}

func TestRefresh(t *testing.T) {
	repo := newMemUsuarioRepo()
	seedUsuario(t, repo, "maria", "secreto123", model.RolEmpleado, true)
	svc := service.NewAuthService(repo, testConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreto123"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, "maria", renovado.User.Username)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc := service.NewAuthService(newMemUsuarioRepo(), testConfig())

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
	assert.True(t, apierror.IsValidation(err))
}

func TestRefreshUsuarioDesactivado(t *testing.T) {
	repo := newMemUsuarioRepo()
	u := seedUsuario(t, repo, "maria", "secreto123", model.RolEmpleado, true)
	svc := service.NewAuthService(repo, testConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secreto123"})
	require.NoError(t, err)

	require.NoError(t, repo.SetActivo(context.Background(), u.ID, false))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
	assert.True(t, apierror.IsValidation(err))
}

func TestCrearUsuario(t *testing.T) {
	repo := newMemUsuarioRepo()
	svc := service.NewAuthService(repo, testConfig())

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "pedro",
		Nombre:   "Pedro Gomez",
		Password: "secreto123",
		Rol:      model.RolInvitado,
	})
	require.NoError(t, err)
	assert.Equal(t, "pedro", resp.Username)
	assert.Equal(t, model.RolInvitado, resp.Rol)
	assert.True(t, resp.Activo)

	// el password nunca se guarda plano
	u, err := repo.FindByUsername(context.Background(), "pedro")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto123")))
}

func TestCrearUsuarioDuplicadoFalla(t *testing.T) {
	repo := newMemUsuarioRepo()
	seedUsuario(t, repo, "maria", "secreto123", model.RolEmpleado, true)
	svc := service.NewAuthService(repo, testConfig())

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "maria",
		Nombre:   "Otra Maria",
		Password: "secreto123",
		Rol:      model.RolEmpleado,
	})
	require.Error(t, err)
	assert.True(t, apierror.IsConflict(err))
}

func TestDesactivarYReactivarUsuario(t *testing.T) {
	repo := newMemUsuarioRepo()
	u := seedUsuario(t, repo, "maria", "secreto123", model.RolEmpleado, true)
	svc := service.NewAuthService(repo, testConfig())

	require.NoError(t, svc.DesactivarUsuario(context.Background(), u.ID))
	activos, err := svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, activos)

	require.NoError(t, svc.ReactivarUsuario(context.Background(), u.ID))
	activos, err = svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, activos, 1)
}

func TestActualizarUsuarioInexistente(t *testing.T) {
	svc := service.NewAuthService(newMemUsuarioRepo(), testConfig())

	_, err := svc.ActualizarUsuario(context.Background(), uuid.New(), dto.ActualizarUsuarioRequest{Nombre: "x"})
	require.Error(t, err)
	assert.True(t, apierror.IsNotFound(err))
}
