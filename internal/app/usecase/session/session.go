package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/pakolabs/business-console/internal/app/entity"
	storage "github.com/pakolabs/business-console/internal/app/storage/api/model"
	"go.uber.org/zap"
)

const (
	MsgSessionExpired    = "Oturumunuz sona erdi. Güvenliğiniz için tekrar giriş yapmanız gerekmektedir."
	MsgSessionExpired401 = "Oturumunuz sona erdi. Lütfen tekrar giriş yapın."
	MsgSessionExpired403 = "Erişim yetkiniz kalmadı veya oturumunuz sona erdi. Lütfen tekrar giriş yapın."

	TitleSuccess = "Başarılı"
	TitleError   = "Hata"
	TitleWarning = "Uyarı"
	TitleInfo    = "Bilgi"
)

const defaultToastDuration = 5 * time.Second

// Navigator is invoked when the user acknowledges the expiry modal; the
// application root routes it to the login entry point.
type Navigator interface {
	NavigateToLogin()
}

// Coordinator reacts to the transport's session expiry signal and owns the
// two notification axes: the expiry modal and the single active toast slot.
type Coordinator struct {
	store storage.CredentialStore
	nav   Navigator

	mu             sync.Mutex
	sessionExpired bool
	sessionMessage string
	toast          entity.Toast
	toastGen       uint64
}

func New(store storage.CredentialStore, nav Navigator) *Coordinator {
	return &Coordinator{
		store: store,
		nav:   nav,
	}
}

// SessionExpired implements the transport expiry notifier. The wording is
// selected by status code: 401 and 403 get distinct messages.
func (c *Coordinator) SessionExpired(statusCode int) {
	message := MsgSessionExpired
	switch statusCode {
	case http.StatusUnauthorized:
		message = MsgSessionExpired401
	case http.StatusForbidden:
		message = MsgSessionExpired403
	}

	zap.L().Info("session expiry signal received", zap.Int("status", statusCode))

	c.ShowSessionExpired(message)
}

func (c *Coordinator) ShowSessionExpired(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessionExpired = true
	c.sessionMessage = message
}

func (c *Coordinator) HideSessionExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessionExpired = false
	c.sessionMessage = ""
}

// HandleSessionLogin is the hard interrupt behind the modal's acknowledge
// action: it clears all local credential state and forces navigation to the
// login entry point.
func (c *Coordinator) HandleSessionLogin() {
	c.HideSessionExpired()

	err := c.store.Clear()
	if err != nil {
		zap.L().Error("error while clearing credentials on session login", zap.Error(err))
	}

	if c.nav != nil {
		c.nav.NavigateToLogin()
	}
}

func (c *Coordinator) IsSessionExpired() (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sessionExpired, c.sessionMessage
}

// ShowToast replaces any visible toast; there is no stacking or queueing.
// A toast with zero duration stays until dismissed manually.
func (c *Coordinator) ShowToast(severity entity.ToastSeverity, title, message string, duration time.Duration) {
	c.mu.Lock()
	c.toastGen++
	generation := c.toastGen
	c.toast = entity.Toast{
		Visible:  true,
		Severity: severity,
		Title:    title,
		Message:  message,
		Duration: duration,
	}
	c.mu.Unlock()

	if duration > 0 {
		time.AfterFunc(duration, func() {
			c.hideToastIfCurrent(generation)
		})
	}
}

func (c *Coordinator) HideToast() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.toast.Visible = false
}

func (c *Coordinator) Toast() entity.Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.toast
}

func (c *Coordinator) ShowSuccess(message string) {
	c.ShowToast(entity.ToastSuccess, TitleSuccess, message, defaultToastDuration)
}

func (c *Coordinator) ShowError(message string) {
	c.ShowToast(entity.ToastError, TitleError, message, defaultToastDuration)
}

func (c *Coordinator) ShowWarning(message string) {
	c.ShowToast(entity.ToastWarning, TitleWarning, message, defaultToastDuration)
}

func (c *Coordinator) ShowInfo(message string) {
	c.ShowToast(entity.ToastInfo, TitleInfo, message, defaultToastDuration)
}

// hideToastIfCurrent only dismisses the toast that armed the timer; a
// replacement toast keeps its own countdown.
func (c *Coordinator) hideToastIfCurrent(generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.toastGen == generation {
		c.toast.Visible = false
	}
}
