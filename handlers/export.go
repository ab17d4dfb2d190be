package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"balloonbudget/services"
)

func writeDownload(e *core.RequestEvent, contentType, filename string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	e.Response.WriteHeader(http.StatusOK)
	_, err := e.Response.Write(body)
	return err
}

// renderExport generates a quotation document in the requested format.
func renderExport(e *core.RequestEvent, data *services.QuotationExportData, format string) error {
	switch format {
	case "pdf":
		pdfBytes, err := services.GenerateQuotationPDF(data)
		if err != nil {
			log.Printf("export: failed to generate PDF for %s: %v", data.ReferenceNumber, err)
			return errorJSON(e, http.StatusInternalServerError, "failed to generate PDF")
		}
		return writeDownload(e, "application/pdf", services.ExportFilename(data, "pdf"), pdfBytes)
	case "excel", "xlsx":
		xlsxBytes, err := services.GenerateQuotationExcel(data)
		if err != nil {
			log.Printf("export: failed to generate Excel for %s: %v", data.ReferenceNumber, err)
			return errorJSON(e, http.StatusInternalServerError, "failed to generate Excel file")
		}
		return writeDownload(e, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			services.ExportFilename(data, "xlsx"), xlsxBytes)
	default:
		return errorJSON(e, http.StatusBadRequest, "unsupported export format: "+format)
	}
}

// HandleQuotationExport returns a handler that downloads a stored quotation
// as PDF or Excel, picked by the {format} path value.
func HandleQuotationExport(store *services.QuotationStore, settings services.Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		q, err := store.FindByID(id)
		if err != nil {
			log.Printf("export: quotation not found %s: %v", id, err)
			return errorJSON(e, http.StatusNotFound, "quotation not found")
		}
		return renderExport(e, services.BuildQuotationExportData(q, settings), e.Request.PathValue("format"))
	}
}

// HandleSessionExport returns a handler that exports an unsaved session.
// The document carries a draft reference and nothing is persisted.
func HandleSessionExport(sessions *services.SessionStore, settings services.Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var data *services.QuotationExportData
		err := withSession(e, sessions, func(s *services.Session) error {
			data = services.BuildQuotationExportData(s.Quotation(), settings)
			return nil
		})
		if err != nil || data == nil {
			return err
		}
		return renderExport(e, data, e.Request.PathValue("format"))
	}
}
