package instagram

import (
	"context"

	"go.uber.org/zap"

	"github.com/ppiankov/adscout/internal/fault"
)

// Credentials authenticate the session
type Credentials struct {
	Username string
	Password string
}

// notNowDialogs is how many post-login prompts are dismissed
const notNowDialogs = 2

// Login signs in. Missing form fields or submit button are authentication
// failures; the consent banner and post-login prompts are optional.
func (n *Navigator) Login(ctx context.Context, creds Credentials) error {
	const op = "login"

	if err := n.open(ctx, n.base+"/"); err != nil {
		return fault.New(fault.KindAuthentication, op, err)
	}

	if el, err := n.session.Find(ctx, n.sel.CookieConsent); err == nil {
		if err := el.Click(); err == nil {
			if err := n.sleep(ctx, n.limits.ExpandDelay/2); err != nil {
				return err
			}
		}
	} else {
		n.logger.Debug("no cookie consent banner")
	}

	user, err := n.session.WaitFor(ctx, n.sel.UsernameField, n.waitTimeout)
	if err != nil {
		return fault.New(fault.KindAuthentication, op+": username field", err)
	}
	pass, err := n.session.WaitFor(ctx, n.sel.PasswordField, n.waitTimeout)
	if err != nil {
		return fault.New(fault.KindAuthentication, op+": password field", err)
	}

	if err := user.Input(creds.Username); err != nil {
		return fault.New(fault.KindAuthentication, op+": type username", err)
	}
	if err := pass.Input(creds.Password); err != nil {
		return fault.New(fault.KindAuthentication, op+": type password", err)
	}

	submit, err := n.session.WaitFor(ctx, n.sel.SubmitButton, n.waitTimeout)
	if err != nil {
		return fault.New(fault.KindAuthentication, op+": submit button", err)
	}
	if err := submit.Click(); err != nil {
		return fault.New(fault.KindAuthentication, op+": submit", err)
	}

	if err := n.sleep(ctx, n.limits.LoginSettle); err != nil {
		return err
	}

	for i := 0; i < notNowDialogs; i++ {
		clicked, err := n.clickIfPresent(ctx, n.sel.NotNowButton, n.limits.ExpandDelay)
		if err != nil {
			return err
		}
		if !clicked {
			n.logger.Debug("post-login prompt absent", zap.Int("prompt", i+1))
		}
	}

	n.logger.Info("logged in", zap.String("username", creds.Username))
	return nil
}
