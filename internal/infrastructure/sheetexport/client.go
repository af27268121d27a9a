// Package sheetexport implementa el render remoto del aviso: clona una hoja
// plantilla en el servicio de hojas, la puebla por direcciones de celda fijas,
// exporta el PDF y borra el clon. Es el equivalente en red del render local
// con Maroto; un fallo (respuesta no-200) es recuperable por fila.
package sheetexport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apppayrun "github.com/jhoicas/Avisos-pago-api/internal/application/payrun"
)

// Verificar en tiempo de compilación que el cliente implementa el puerto.
var _ apppayrun.NotificationRenderer = (*Client)(nil)

// Direcciones de celda fijas de la plantilla de aviso.
const (
	cellCompany     = "B3"
	cellAgent       = "B4"
	cellMonth       = "B5"
	cellAmount      = "B6"
	cellBankAccount = "B7"
	cellPeriod      = "E2"
)

// Config parámetros del servicio de hojas.
type Config struct {
	BaseURL    string // ej. https://sheets.internal.example/api/v1
	Token      string // Bearer token del servicio
	TemplateID string // hoja plantilla que se clona por aviso
}

// Client cliente REST del servicio de hojas.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient construye el cliente con un timeout de red generoso (60 s):
// el export de PDF del servicio de hojas puede tardar varios segundos.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// ── Estructuras del protocolo ─────────────────────────────────────────────────

type cloneRequest struct {
	Name string `json:"name"`
}

type cloneResponse struct {
	ID string `json:"id"`
}

type populateRequest struct {
	Cells map[string]string `json:"cells"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// RenderNotification clona la plantilla, la puebla con los datos de la fila,
// exporta el PDF y borra el clon. El nombre del clon lleva un UUID por
// invocación: la plantilla vive en un workspace compartido y dos corridas no
// deben pisarse los clones.
func (c *Client) RenderNotification(ctx context.Context, data apppayrun.NotificationData) ([]byte, error) {
	cloneName := fmt.Sprintf("aviso-%s-fila%d-%s", data.PeriodYYMM, data.RowNum, uuid.New().String())
	cloneID, err := c.cloneTemplate(ctx, cloneName)
	if err != nil {
		return nil, fmt.Errorf("sheetexport: clonar plantilla: %w", err)
	}
	// El clon se borra siempre, incluso si populate o export fallan; un fallo
	// del borrado no invalida el render ya obtenido.
	defer c.deleteSheet(cloneID)

	if err := c.populate(ctx, cloneID, data); err != nil {
		return nil, fmt.Errorf("sheetexport: poblar celdas: %w", err)
	}
	pdf, err := c.exportPDF(ctx, cloneID)
	if err != nil {
		return nil, fmt.Errorf("sheetexport: exportar PDF: %w", err)
	}
	return pdf, nil
}

// ── Operaciones REST ──────────────────────────────────────────────────────────

func (c *Client) cloneTemplate(ctx context.Context, name string) (string, error) {
	body, _ := json.Marshal(cloneRequest{Name: name})
	resp, err := c.do(ctx, http.MethodPost,
		fmt.Sprintf("/templates/%s/clone", c.cfg.TemplateID), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", statusError(resp)
	}
	var out cloneResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decodificar respuesta: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("el servicio no devolvió ID del clon")
	}
	return out.ID, nil
}

func (c *Client) populate(ctx context.Context, sheetID string, data apppayrun.NotificationData) error {
	body, _ := json.Marshal(populateRequest{Cells: map[string]string{
		cellCompany:     data.CompanyName,
		cellAgent:       data.AgentName,
		cellMonth:       data.PaymentMonth,
		cellAmount:      data.Amount.StringFixed(0),
		cellBankAccount: data.BankAccount,
		cellPeriod:      data.PeriodYYMM,
	}})
	resp, err := c.do(ctx, http.MethodPut,
		fmt.Sprintf("/sheets/%s/cells", sheetID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return statusError(resp)
	}
	return nil
}

func (c *Client) exportPDF(ctx context.Context, sheetID string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/sheets/%s/export?format=pdf", sheetID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}
	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("leer cuerpo del export: %w", err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("el export devolvió un PDF vacío")
	}
	return pdf, nil
}

// deleteSheet borra el clon en un context propio: el defer debe ejecutarse
// aunque el context de la corrida ya esté cancelado.
func (c *Client) deleteSheet(sheetID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	resp, err := c.do(ctx, http.MethodDelete, "/sheets/"+sheetID, nil)
	if err != nil {
		return
	}
	resp.Body.Close()
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("crear request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// statusError arma un error con el código y un fragmento del cuerpo de la respuesta.
func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("respuesta %d del servicio de hojas: %s",
		resp.StatusCode, strings.TrimSpace(string(snippet)))
}
