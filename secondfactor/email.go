package secondfactor

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"lukechampine.com/frand"

	tplog "github.com/FluidWallet/fluid/log"
	tplogcmm "github.com/FluidWallet/fluid/log/common"
)

const (
	// TestBypassCode is accepted for any email as a test affordance,
	// carried over from the original flows. Remove before shipping to
	// an environment where it matters.
	TestBypassCode = "123456"

	codeDigits    = 6
	issuedCodeMax = 128 // issued codes held per process
)

// Mailer delivers a code out of band. The core never implements
// delivery itself.
type Mailer interface {
	SendCode(email string, code string) error
}

// EmailIssuer issues 6-digit codes and verifies them against the most
// recently issued code per email. No expiry is enforced here; expiry
// policy belongs to the delivery side.
type EmailIssuer struct {
	log    tplog.Logger
	mailer Mailer
	codes  *lru.Cache // email -> last issued code
}

func NewEmailIssuer(level tplogcmm.LogLevel, log tplog.Logger, mailer Mailer) *EmailIssuer {
	eLog := tplog.CreateModuleLogger(level, MOD_NAME, log)

	codes, _ := lru.New(issuedCodeMax)
	return &EmailIssuer{
		log:    eLog,
		mailer: mailer,
		codes:  codes,
	}
}

// Issue generates a fresh code for email, replacing any earlier one,
// and hands it to the mailer. The code itself is never logged.
func (e *EmailIssuer) Issue(email string) error {
	code := fmt.Sprintf("%0*d", codeDigits, frand.Intn(1000000))
	e.codes.Add(email, code)

	e.log.Infof("issued verification code for %s", email)
	return e.mailer.SendCode(email, code)
}

// Verify reports whether code matches the most recently issued code for
// email. Safe to retry; earlier codes for the same email are dead once
// a new one is issued.
func (e *EmailIssuer) Verify(email string, code string) bool {
	if code == TestBypassCode {
		return true
	}

	issued, ok := e.codes.Get(email)
	return ok && issued.(string) == code
}

// Challenge binds the issuer to one email so the caller only needs the
// Verifier capability.
func (e *EmailIssuer) Challenge(email string) Verifier {
	return &emailChallenge{issuer: e, email: email}
}

type emailChallenge struct {
	issuer *EmailIssuer
	email  string
}

func (c *emailChallenge) Verify(code string) bool {
	return c.issuer.Verify(c.email, code)
}
