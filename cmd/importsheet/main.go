// importsheet carga en la tabla payment_records el export CSV de la planilla
// del área financiera. El archivo viene en Shift-JIS (export de Excel japonés)
// y con columnas en posición fija:
//
//	empresa, agente, mes de pago, monto, cuenta de abono, verificación, correo
//
// Los números de fila se preservan: la primera línea de datos es la fila 2,
// igual que en la planilla original, para que los nombres de archivo y los
// updates por fila sigan coincidiendo.
//
// Uso: go run ./cmd/importsheet -file planilla.csv [-dsn <connection-string>]
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Avisos-pago-api/internal/domain/entity"
	"github.com/jhoicas/Avisos-pago-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Avisos-pago-api/pkg/config"
)

const envDSN = "AVISOS_DB_DSN"

func main() {
	var (
		file   = flag.String("file", "", "ruta del CSV exportado de la planilla")
		dsn    = flag.String("dsn", "", "connection string de PostgreSQL")
		utf8In = flag.Bool("utf8", false, "el CSV ya viene en UTF-8 (omite la decodificación Shift-JIS)")
		header = flag.Bool("header", true, "la primera línea es encabezado")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "uso: importsheet -file planilla.csv [-dsn <connection-string>]")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *dsn == "" {
		*dsn = os.Getenv(envDSN)
	}
	if *dsn == "" {
		fmt.Fprintf(os.Stderr, "falta el DSN: use -dsn o la variable %s\n", envDSN)
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var src io.Reader = f
	if !*utf8In {
		src = transform.NewReader(f, japanese.ShiftJIS.NewDecoder())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: *dsn})
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	repo := postgres.NewRecordRepository(pool)

	r := csv.NewReader(src)
	r.FieldsPerRecord = -1 // las planillas reales traen colas de columnas vacías

	// La fila 1 es el encabezado de la planilla; los datos arrancan en la 2.
	rowNum := 1
	imported, skipped := 0, 0
	for {
		cols, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "leer CSV: %v\n", err)
			os.Exit(1)
		}
		rowNum++
		if *header && rowNum == 2 && looksLikeHeader(cols) {
			rowNum-- // el encabezado no consume número de fila de datos
			continue
		}
		rec, ok := parseRow(rowNum, cols)
		if !ok {
			skipped++
			continue
		}
		if err := repo.Upsert(ctx, rec); err != nil {
			fmt.Fprintf(os.Stderr, "fila %d: %v\n", rowNum, err)
			os.Exit(1)
		}
		imported++
	}

	fmt.Printf("importadas %d filas (%d omitidas por vacías)\n", imported, skipped)
}

// looksLikeHeader detecta el encabezado por su columna de monto no numérica.
func looksLikeHeader(cols []string) bool {
	if len(cols) < 4 {
		return true
	}
	_, err := decimal.NewFromString(cleanAmount(cols[3]))
	return err != nil
}

// parseRow arma el registro desde las columnas posicionales. Una fila sin
// empresa ni agente se considera vacía y se omite.
func parseRow(rowNum int, cols []string) (*entity.PaymentRecord, bool) {
	col := func(i int) string {
		if i < len(cols) {
			return strings.TrimSpace(cols[i])
		}
		return ""
	}
	company, agent := col(0), col(1)
	if company == "" && agent == "" {
		return nil, false
	}

	amount := decimal.Zero
	if raw := cleanAmount(col(3)); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			amount = v
		}
	}

	return &entity.PaymentRecord{
		RowNum:         rowNum,
		CompanyName:    company,
		AgentName:      agent,
		PaymentMonth:   col(2),
		Amount:         amount,
		BankAccount:    col(4),
		CheckValue:     col(5),
		RecipientEmail: col(6),
		Status:         entity.StatusBlank,
	}, true
}

// cleanAmount quita el símbolo de yen y los separadores de miles.
func cleanAmount(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "¥")
	s = strings.TrimPrefix(s, "￥")
	return strings.ReplaceAll(s, ",", "")
}
