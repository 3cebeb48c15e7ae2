package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		baseURL = envOr("MAILGATE_URL", "http://localhost:3000")
		out     = envOr("MAILGATE_OUT", "text")
		timeout = 2 * time.Minute
	)
	cl := &client{}

	root := &cobra.Command{
		Use:           "mailgate",
		Short:         "CLI para el servicio mailgate (HTTP -> SMTP)",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if out != "json" && out != "text" {
				return fmt.Errorf("--out inválido %q (json|text)", out)
			}
			cl.BaseURL = baseURL
			cl.OutFormat = out
			cl.HTTP = &http.Client{Timeout: timeout}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del servicio (env MAILGATE_URL)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text (env MAILGATE_OUT)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", timeout, "Timeout total del request")

	root.AddCommand(newSendCmd(cl), newPingCmd(cl))
	return root
}

func newSendCmd(cl *client) *cobra.Command {
	var (
		p        sendParams
		htmlFile string
		viaQuery bool
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Envía un email a través del relay SMTP indicado",
		Example: `  mailgate send --smtp-host smtp.example.com --smtp-port 587 \
    --smtp-user me@example.com --from me@example.com --to you@example.com \
    --subject "Hola" --html "<p>Hola!</p>"   # smtp-pass via MAILGATE_SMTP_PASS`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if p.SMTPPass == "" {
				p.SMTPPass = os.Getenv("MAILGATE_SMTP_PASS")
			}
			if htmlFile != "" {
				b, err := readSource(cmd.InOrStdin(), htmlFile)
				if err != nil {
					return fmt.Errorf("leyendo --html-file: %w", err)
				}
				p.HTML = string(b)
			}

			status, body, err := cl.send(cmd.Context(), p, viaQuery)
			if err != nil {
				return err
			}
			cl.print(cmd.OutOrStdout(), status, body)
			if status != http.StatusOK {
				return fmt.Errorf("send falló: status=%d", status)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&p.SMTPHost, "smtp-host", "", "Host del relay SMTP")
	f.IntVar(&p.SMTPPort, "smtp-port", 587, "Puerto del relay (465 = TLS implícito)")
	f.BoolVar(&p.SMTPSecure, "smtp-secure", false, "Forzar TLS implícito")
	f.StringVar(&p.SMTPUser, "smtp-user", "", "Usuario SMTP")
	f.StringVar(&p.SMTPPass, "smtp-pass", "", "Password SMTP (mejor: env MAILGATE_SMTP_PASS)")
	f.StringVar(&p.From, "from", "", "Remitente")
	f.StringVar(&p.To, "to", "", "Destinatario")
	f.StringVar(&p.Subject, "subject", "", "Asunto")
	f.StringVar(&p.HTML, "html", "", "Cuerpo HTML")
	f.StringVar(&htmlFile, "html-file", "", "Archivo con el cuerpo HTML ('-' = stdin)")
	f.BoolVar(&viaQuery, "query", false, "Enviar por GET con query string en vez de POST JSON")
	return cmd
}

func newPingCmd(cl *client) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Verifica que el servicio responda (GET /readyz)",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do(cmd.Context(), http.MethodGet, "/readyz", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("ping falló: status=%d body=%s", status, strings.TrimSpace(string(body)))
			}
			if cl.OutFormat == "text" {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			cl.print(cmd.OutOrStdout(), status, body)
			return nil
		},
	}
}

func readSource(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
