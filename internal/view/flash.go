package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	flashKeyForm     = "form_"
)

// FlashData carries the one-shot messages rendered by the layout.
type FlashData struct {
	Success []string
	Error   []string
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return
	}
	sess.AddFlash(message, key)
	_ = sess.Save(c.Request(), c.Response())
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// SetFormEmail remembers a submitted email so the next render can pre-fill it.
func SetFormEmail(c echo.Context, email string) {
	SetFormValues(c, map[string]string{"email": email})
}

// PopFormEmail returns and clears the remembered email, if any.
func PopFormEmail(c echo.Context) string {
	return PopFormValue(c, "email")
}

// SetFormValues remembers submitted fields, keyed by form field name, for
// the next render. Empty values are skipped.
func SetFormValues(c echo.Context, values map[string]string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return
	}
	for field, value := range values {
		if value != "" {
			sess.AddFlash(value, flashKeyForm+field)
		}
	}
	_ = sess.Save(c.Request(), c.Response())
}

// PopFormValue returns and clears one remembered field, if any.
func PopFormValue(c echo.Context, field string) string {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return ""
	}
	values := toStrings(sess.Flashes(flashKeyForm + field))
	if len(values) == 0 {
		return ""
	}
	// We must save the session here to clear the consumed flash.
	_ = sess.Save(c.Request(), c.Response())
	return values[0]
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return data
	}

	// The Flashes() method retrieves and then clears the flashes from the session.
	data.Success = toStrings(sess.Flashes(flashKeySuccess))
	data.Error = toStrings(sess.Flashes(flashKeyError))

	// If we have flashes, save the session to persist the clearing of flashes.
	if len(data.Success) > 0 || len(data.Error) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

func toStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
