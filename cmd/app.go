package cmd

import (
	"bufio"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/FluidWallet/fluid/account"
	tpcodec "github.com/FluidWallet/fluid/codec"
	"github.com/FluidWallet/fluid/configuration"
	"github.com/FluidWallet/fluid/crypt"
	tplog "github.com/FluidWallet/fluid/log"
	tplogcmm "github.com/FluidWallet/fluid/log/common"
	"github.com/FluidWallet/fluid/secondfactor"
	"github.com/FluidWallet/fluid/service"
	"github.com/FluidWallet/fluid/session"
	"github.com/FluidWallet/fluid/storage"
)

// app is the composition root behind every command: configuration,
// logging, storage and the session machine wired together once per
// process.
type app struct {
	log     tplog.Logger
	store   storage.Store
	machine *session.Machine
	svc     service.VaultService
}

func newApp() (*app, error) {
	cfg := configuration.GetConfiguration()

	log, err := tplog.CreateMainLogger(tplogcmm.WarnLevel, tplog.JSONFormat, tplog.StdErrOutput, "")
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.NodeConfig.RootPath, 0700); err != nil {
		return nil, err
	}

	store := storage.NewStore(cfg.VaultConfig.StoreBackend, log, cfg.NodeConfig.RootPath, cfg.VaultConfig.StoreName)

	marshaler := tpcodec.CreateMarshaler(tpcodec.CodecType_JSON)
	cs := crypt.CreateCryptService(log, cfg.VaultConfig.CryptType)
	accounts := account.NewStore(tplogcmm.WarnLevel, log, cs)
	issuer := secondfactor.NewEmailIssuer(tplogcmm.WarnLevel, log, newMailer(log))

	machine := session.NewMachine(tplogcmm.WarnLevel, log, store, marshaler, accounts, issuer, &terminalConfirmer{})

	return &app{
		log:     log,
		store:   store,
		machine: machine,
		svc:     service.NewVaultService(machine),
	}, nil
}

func (a *app) close() {
	a.machine.Close()
	if err := a.store.Close(); err != nil {
		a.log.Errorf("close store failed: %v", err)
	}
}

// unlock drives the whole interactive unlock flow, including the
// second factor round when one is configured.
func (a *app) unlock() error {
	if a.svc.State() == session.SessionState_Unlocked {
		return nil
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	if err := a.svc.Unlock(password); err != nil {
		return err
	}

	for a.svc.State() == session.SessionState_AwaitingSecondFactor {
		code, err := promptLine("Verification code (empty to cancel): ")
		if err != nil {
			return err
		}
		if code == "" {
			return a.svc.CancelSecondFactor()
		}

		if err := a.svc.SubmitCode(code); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// terminalConfirmer asks the user before destructive transitions.
type terminalConfirmer struct{}

func (c *terminalConfirmer) Confirm(action string) bool {
	answer, err := promptLine(fmt.Sprintf("Really %s the vault? [y/N] ", action))
	if err != nil {
		return false
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

// smtpMailer delivers verification codes through a relay configured by
// FLUID_SMTP_ADDR and FLUID_SMTP_FROM. Unconfigured, codes cannot be
// delivered and sending fails; the machine logs and waits for a code
// regardless.
type smtpMailer struct {
	log  tplog.Logger
	addr string
	from string
}

func newMailer(log tplog.Logger) secondfactor.Mailer {
	return &smtpMailer{
		log:  log,
		addr: os.Getenv("FLUID_SMTP_ADDR"),
		from: os.Getenv("FLUID_SMTP_FROM"),
	}
}

func (m *smtpMailer) SendCode(email string, code string) error {
	if m.addr == "" {
		return fmt.Errorf("no SMTP relay configured")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Fluid verification code\r\n\r\nYour verification code is %s\r\n", m.from, email, code)

	return smtp.SendMail(m.addr, nil, m.from, []string{email}, []byte(msg))
}
