package payrun

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Nomenclatura determinista de los PDFs generados.
//
// Nombre base:   {YYMM}_{agente}_Payment_Notification.pdf
// Nombre único:  {YYMM}_{agente}_Payment_Notification_{empresa}_{fila}.pdf
// Carpeta:       {YYMM}_Payment_Notifications
//
// La generación intenta primero el nombre base y, si ya existe un archivo con
// ese nombre exacto en la carpeta, usa el nombre único (esquema de dos
// ranuras, no un contador). El envío debe reproducir la misma lógica en
// orden inverso: primero el único, luego el base, porque no sabe a priori si
// la fila disparó la colisión en su momento.

const (
	fileSuffix   = "_Payment_Notification"
	folderSuffix = "_Payment_Notifications"
)

// FolderName carpeta del período bajo la raíz de almacenamiento.
func FolderName(p Period) string {
	return p.YYMM() + folderSuffix
}

// BaseFileName nombre primario del PDF de un agente en un período.
func BaseFileName(p Period, agentName string) string {
	return p.YYMM() + "_" + SanitizeNamePart(agentName) + fileSuffix + ".pdf"
}

// UniqueFileName nombre alterno con sufijo de desambiguación empresa+fila.
func UniqueFileName(p Period, agentName, companyName string, rowNum int) string {
	return fmt.Sprintf("%s_%s%s_%s_%d.pdf",
		p.YYMM(), SanitizeNamePart(agentName), fileSuffix,
		SanitizeNamePart(companyName), rowNum)
}

// CandidateFileNames nombres a sondear en la fase de envío, en orden de
// prioridad: único primero, base después.
func CandidateFileNames(p Period, agentName, companyName string, rowNum int) []string {
	return []string{
		UniqueFileName(p, agentName, companyName, rowNum),
		BaseFileName(p, agentName),
	}
}

// SanitizeNamePart normaliza un fragmento de nombre de archivo:
// NFKC pliega los caracteres de ancho completo habituales en razones sociales
// (ＡＢＣ → ABC), y los separadores de ruta y espacios pasan a "_".
// Ambas fases usan esta misma función; si divergieran, el envío no podría
// relocalizar los PDFs.
func SanitizeNamePart(s string) string {
	s = norm.NFKC.String(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	prevUnderscore := false
	for _, r := range s {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ', '\t', '　':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		default:
			b.WriteRune(r)
			prevUnderscore = false
		}
	}
	return strings.Trim(b.String(), "_")
}
