package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/mailgate/internal/email"
	"github.com/dropDatabas3/mailgate/internal/email/smtptest"
)

type fakeDispatcher struct {
	calls int
	opts  email.Options
	msg   email.Message
	err   error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, o email.Options, m email.Message) (email.Receipt, error) {
	f.calls++
	f.opts, f.msg = o, m
	if f.err != nil {
		return email.Receipt{}, f.err
	}
	return email.Receipt{MessageID: "<id@example.com>", Host: o.Host, Port: o.Port, Secure: o.Secure}, nil
}

func TestSend_Success(t *testing.T) {
	fd := &fakeDispatcher{}
	svc := NewSendService(Deps{Dispatcher: fd, InsecureSkipVerify: true})

	rcpt, err := svc.Send(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "<id@example.com>", rcpt.MessageID)

	require.Equal(t, 1, fd.calls)
	assert.Equal(t, email.Options{
		Host:               "smtp.example.com",
		Port:               587,
		Secure:             false,
		Username:           "user@example.com",
		Password:           "secret",
		InsecureSkipVerify: true,
	}, fd.opts)
	assert.Equal(t, "<p>Hello</p>", fd.msg.HTML)
	assert.Equal(t, "Site <noreply@example.com>", fd.msg.From)
}

func TestSend_Port465IsSecure(t *testing.T) {
	fd := &fakeDispatcher{}
	req := validRequest()
	req.SMTPPort = "465"

	_, err := NewSendService(Deps{Dispatcher: fd}).Send(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, fd.opts.Secure)
}

func TestSend_MissingFieldsSkipDispatch(t *testing.T) {
	fd := &fakeDispatcher{}
	req := validRequest()
	req.SMTPPass = ""
	req.HTML = ""

	_, err := NewSendService(Deps{Dispatcher: fd}).Send(context.Background(), req)

	var verr *email.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"smtp_pass", "html"}, verr.Missing)
	assert.Equal(t, "Missing required field(s): smtp_pass, html", err.Error())
	assert.Zero(t, fd.calls)
}

func TestSend_InvalidPort(t *testing.T) {
	fd := &fakeDispatcher{}
	req := validRequest()
	req.SMTPPort = "0"

	_, err := NewSendService(Deps{Dispatcher: fd}).Send(context.Background(), req)

	var verr *email.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid value for field(s): smtp_port", err.Error())
	assert.Zero(t, fd.calls)
}

func TestSend_MissingBeatsInvalidPort(t *testing.T) {
	req := validRequest()
	req.SMTPPort = "nope"
	req.To = ""

	_, err := NewSendService(Deps{Dispatcher: &fakeDispatcher{}}).Send(context.Background(), req)
	assert.EqualError(t, err, "Missing required field(s): to")
}

func TestSend_TransportErrorPassesThrough(t *testing.T) {
	cause := errors.New("535 5.7.8 Authentication failed")
	fd := &fakeDispatcher{err: &email.TransportError{Err: cause}}

	_, err := NewSendService(Deps{Dispatcher: fd}).Send(context.Background(), validRequest())

	var terr *email.TransportError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, fd.calls)
}

func TestSend_NoDispatcher(t *testing.T) {
	_, err := NewSendService(Deps{}).Send(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoDispatcher)
}

// redirectDispatcher reenvía al relay de test conservando Secure tal como
// lo resolvió el service (el 465 real no se puede bindear en tests).
type redirectDispatcher struct {
	port int
	next email.Dispatcher
	seen email.Options
}

func (r *redirectDispatcher) Dispatch(ctx context.Context, o email.Options, m email.Message) (email.Receipt, error) {
	r.seen = o
	o.Port = r.port
	return r.next.Dispatch(ctx, o, m)
}

func TestSend_Port465SpeaksImplicitTLS(t *testing.T) {
	relay := smtptest.NewRelay(t, smtptest.WithImplicitTLS(t))
	rd := &redirectDispatcher{port: relay.Port, next: email.NewSMTPDispatcher(false)}

	req := validRequest()
	req.SMTPHost = relay.Host
	req.SMTPPort = "465"
	req.SMTPSecure = ""
	req.SMTPUser = smtptest.DefaultUser
	req.SMTPPass = smtptest.DefaultPass

	_, err := NewSendService(Deps{Dispatcher: rd, InsecureSkipVerify: true}).Send(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 465, rd.seen.Port)
	assert.True(t, rd.seen.Secure)
	require.Len(t, relay.Messages(), 1)
	assert.Equal(t, []string{"owner@example.com"}, relay.Messages()[0].To)
}
