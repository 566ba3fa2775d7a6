package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/pakolabs/business-console/internal/app/entity"
	"github.com/pakolabs/business-console/internal/app/model"
	err_storage "github.com/pakolabs/business-console/internal/app/storage/api/errors"
	storage "github.com/pakolabs/business-console/internal/app/storage/api/model"
	"github.com/pakolabs/business-console/internal/app/transport"
	"go.uber.org/zap"
)

const (
	loginEndpoint    = "/auth/login"
	registerEndpoint = "/auth/register/business"
)

const (
	MsgInvalidCredentials = "Login failed. Your account may be pending approval or credentials are incorrect."
	MsgUserNotFound       = "User not found. Please register first."
	MsgNetworkUnavailable = "Cannot connect to server. Please check if the server is running."
	MsgLoginFailed        = "Login failed. Please try again."
	MsgNoToken            = "No token received from server"
	MsgRegisterFailed     = "Registration failed. Please try again."
	MsgRegisterSuccess    = "Registration successful!"
)

type Transport interface {
	Do(ctx context.Context, method, path string, body any, query url.Values) (transport.Response, error)
	ResetExpiryDebounce()
}

// Manager owns the credential lifecycle: login, registration, logout and
// rehydration from the persisted store. Exactly one session is active per
// client process.
type Manager struct {
	transport Transport
	store     storage.CredentialStore

	mu             sync.Mutex
	session        entity.Session
	loading        bool
	lastErr        error
	successMessage string
}

func New(transport Transport, store storage.CredentialStore) *Manager {
	return &Manager{
		transport: transport,
		store:     store,
	}
}

// Login authenticates against the business API, persists the extracted
// credentials and re-arms the transport expiry signal. Failures come back as
// *entity.AuthError with a user-facing message.
func (m *Manager) Login(ctx context.Context, credentials model.LoginRequest) (entity.Session, error) {
	m.begin()

	res, err := m.transport.Do(ctx, http.MethodPost, loginEndpoint, credentials, nil)
	if err != nil {
		authErr := classifyLoginError(err)
		m.finish(authErr)
		return entity.Session{}, authErr
	}

	var response model.LoginResponse
	err = json.Unmarshal(res.Body, &response)
	if err != nil {
		zap.L().Error("error while decoding login response", zap.Error(err))
		response = model.LoginResponse{}
	}

	token := ExtractToken(response)
	if len(token) == 0 {
		authErr := &entity.AuthError{Kind: entity.AuthNoToken, Message: MsgNoToken}
		m.finish(authErr)
		return entity.Session{}, authErr
	}

	session := entity.Session{
		Token: token,
		User:  ExtractUser(response, credentials.Email),
	}

	err = m.store.SaveCredentials(entity.Credentials{Token: session.Token, User: session.User})
	if err != nil {
		zap.L().Error("error while persisting credentials after login", zap.Error(err))
	}

	m.transport.ResetExpiryDebounce()

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	m.finish(nil)

	return session, nil
}

// Register creates a business account and returns the server confirmation
// message. Registration success does not establish a session.
func (m *Manager) Register(ctx context.Context, profile model.RegisterBusinessRequest) (string, error) {
	m.begin()

	res, err := m.transport.Do(ctx, http.MethodPost, registerEndpoint, profile, nil)
	if err != nil {
		authErr := classifyRegisterError(err)
		m.finish(authErr)
		return "", authErr
	}

	message := MsgRegisterSuccess
	var response model.RegisterResponse
	if err := json.Unmarshal(res.Body, &response); err == nil && len(response.Message) > 0 {
		message = response.Message
	}

	m.mu.Lock()
	m.successMessage = message
	m.mu.Unlock()

	m.finish(nil)

	return message, nil
}

// Logout clears the persisted credentials and the in-memory session.
// Idempotent, never fails.
func (m *Manager) Logout() {
	err := m.store.Clear()
	if err != nil {
		zap.L().Error("error while clearing credential store on logout", zap.Error(err))
	}

	m.mu.Lock()
	m.session = entity.Session{}
	m.mu.Unlock()
}

// Initialize rehydrates the session from the persisted store. Corrupted
// entries are treated as absent and removed.
func (m *Manager) Initialize() {
	credentials, err := m.store.LoadCredentials()
	if err != nil {
		if !errors.Is(err, err_storage.ErrCredentialsNotFound) {
			zap.L().Warn("clearing unusable persisted credentials", zap.Error(err))
			if clearErr := m.store.Clear(); clearErr != nil {
				zap.L().Error("error while clearing credential store", zap.Error(clearErr))
			}
		}

		m.mu.Lock()
		m.session = entity.Session{}
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	m.session = entity.Session{
		Token: credentials.Token,
		User:  credentials.User,
	}
	m.mu.Unlock()
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.session.Authenticated()
}

func (m *Manager) Session() entity.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.session
}

func (m *Manager) UserName() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.session.User.Name
}

func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.loading
}

func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastErr
}

func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastErr = nil
}

func (m *Manager) SuccessMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.successMessage
}

func (m *Manager) ClearSuccessMessage() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.successMessage = ""
}

func (m *Manager) begin() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loading = true
	m.lastErr = nil
}

func (m *Manager) finish(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loading = false
	m.lastErr = err
}

func classifyLoginError(err error) *entity.AuthError {
	var httpErr *entity.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Status {
		case http.StatusUnauthorized:
			return &entity.AuthError{Kind: entity.AuthInvalidCredentials, Message: MsgInvalidCredentials, Err: err}
		case http.StatusNotFound:
			return &entity.AuthError{Kind: entity.AuthUserNotFound, Message: MsgUserNotFound, Err: err}
		}

		message := httpErr.ServerMessage
		if len(message) == 0 {
			message = MsgLoginFailed
		}

		return &entity.AuthError{Kind: entity.AuthUnknown, Message: message, Err: err}
	}

	// No HTTP response was received at all.
	return &entity.AuthError{Kind: entity.AuthNetworkUnavailable, Message: MsgNetworkUnavailable, Err: err}
}

func classifyRegisterError(err error) *entity.AuthError {
	var httpErr *entity.HTTPError
	if errors.As(err, &httpErr) && len(httpErr.ServerMessage) > 0 {
		return &entity.AuthError{Kind: entity.AuthUnknown, Message: httpErr.ServerMessage, Err: err}
	}

	return &entity.AuthError{Kind: entity.AuthUnknown, Message: MsgRegisterFailed, Err: err}
}
