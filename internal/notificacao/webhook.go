package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Webhook envia alertas em JSON para uma URL externa. Sem URL configurada não faz nada.
type Webhook struct {
	URL    string
	Client *http.Client
}

func NovoWebhook(url string) *Webhook {
	return &Webhook{URL: url, Client: &http.Client{Timeout: 5 * time.Second}}
}

// CNPJDuplicado avisa que alguém tentou cadastrar um cliente com CNPJ já existente.
// Falhas só são logadas.
func (w *Webhook) CNPJDuplicado(ctx context.Context, cnpj string) {
	w.enviar(ctx, map[string]string{
		"mensagem": "Alerta: tentativa de cadastro de cliente com CNPJ já existente",
		"cnpj":     cnpj,
	})
}

func (w *Webhook) enviar(ctx context.Context, payload any) {
	if w == nil || w.URL == "" {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("webhook: payload inválido")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Str("url", w.URL).Msg("webhook: requisição inválida")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", w.URL).Msg("erro ao enviar webhook")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Str("url", w.URL).Msg("webhook recusado")
	}
}
