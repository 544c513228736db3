package secondfactor

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"

	"github.com/FluidWallet/fluid/codec"
	tplog "github.com/FluidWallet/fluid/log"
	tplogcmm "github.com/FluidWallet/fluid/log/common"
	"github.com/FluidWallet/fluid/storage"
)

type recordingMailer struct {
	email string
	code  string
	sent  int
}

func (m *recordingMailer) SendCode(email string, code string) error {
	m.email = email
	m.code = code
	m.sent++
	return nil
}

func testIssuer(t *testing.T) (*EmailIssuer, *recordingMailer) {
	log, err := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.JSONFormat, tplog.StdErrOutput, "")
	assert.Equal(t, nil, err)

	mailer := &recordingMailer{}
	return NewEmailIssuer(tplogcmm.NoLevel, log, mailer), mailer
}

func TestEmailIssueVerify(t *testing.T) {
	issuer, mailer := testIssuer(t)

	err := issuer.Issue("user@example.com")
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, mailer.sent)
	assert.Equal(t, "user@example.com", mailer.email)
	assert.Equal(t, 6, len(mailer.code))

	assert.Equal(t, true, issuer.Verify("user@example.com", mailer.code))
	// retries are idempotent
	assert.Equal(t, true, issuer.Verify("user@example.com", mailer.code))

	assert.Equal(t, false, issuer.Verify("user@example.com", "000000"))
	assert.Equal(t, false, issuer.Verify("other@example.com", mailer.code))
}

func TestEmailLastIssuedWins(t *testing.T) {
	issuer, mailer := testIssuer(t)

	err := issuer.Issue("user@example.com")
	assert.Equal(t, nil, err)
	first := mailer.code

	// reissue until the code actually changes, then the first is dead
	second := first
	for i := 0; i < 50 && second == first; i++ {
		err = issuer.Issue("user@example.com")
		assert.Equal(t, nil, err)
		second = mailer.code
	}
	assert.NotEqual(t, first, second)

	assert.Equal(t, false, issuer.Verify("user@example.com", first))
	assert.Equal(t, true, issuer.Verify("user@example.com", second))
}

func TestEmailBypassCode(t *testing.T) {
	issuer, _ := testIssuer(t)

	// accepted even with nothing issued
	assert.Equal(t, true, issuer.Verify("user@example.com", TestBypassCode))

	ch := issuer.Challenge("user@example.com")
	assert.Equal(t, true, ch.Verify(TestBypassCode))
}

func TestTOTPVerify(t *testing.T) {
	prov, err := ProvisionTOTP("Fluid", "user@example.com")
	assert.Equal(t, nil, err)
	assert.NotEqual(t, "", prov.Secret)
	assert.Equal(t, true, strings.HasPrefix(prov.URI, "otpauth://totp/"))
	assert.NotEqual(t, 0, len(prov.QRPNG))

	code, err := totp.GenerateCode(prov.Secret, time.Now())
	assert.Equal(t, nil, err)

	v := NewTOTPVerifier(prov.Secret)
	assert.Equal(t, true, v.Verify(code))
	assert.Equal(t, false, v.Verify("000000"))

	empty := NewTOTPVerifier("")
	assert.Equal(t, false, empty.Verify(code))
}

func TestConfigRoundTrip(t *testing.T) {
	log, err := tplog.CreateMainLogger(tplogcmm.InfoLevel, tplog.JSONFormat, tplog.StdErrOutput, "")
	assert.Equal(t, nil, err)

	store := storage.NewStore(storage.BackendType_Memdb, log, "", "")
	marshaler := codec.CreateMarshaler(codec.CodecType_JSON)

	// absent config means no second factor
	cfg, err := LoadConfig(store, marshaler)
	assert.Equal(t, nil, err)
	assert.Equal(t, Kind_None, cfg.Kind)

	err = SaveConfig(store, marshaler, Config{Kind: Kind_Email, Email: "user@example.com"})
	assert.Equal(t, nil, err)

	cfg, err = LoadConfig(store, marshaler)
	assert.Equal(t, nil, err)
	assert.Equal(t, Kind_Email, cfg.Kind)
	assert.Equal(t, "user@example.com", cfg.Email)
}

func TestCreateVerifier(t *testing.T) {
	issuer, _ := testIssuer(t)

	assert.Nil(t, CreateVerifier(Config{Kind: Kind_None}, issuer))
	assert.NotNil(t, CreateVerifier(Config{Kind: Kind_Email, Email: "a@b.c"}, issuer))
	assert.NotNil(t, CreateVerifier(Config{Kind: Kind_TOTP, TOTPSecret: "JBSWY3DPEHPK3PXP"}, issuer))
}
