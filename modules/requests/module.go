package requests

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
	"github.com/OPMDOR/system-access-form/modules/requests/infrastructure/persistence"
	"github.com/OPMDOR/system-access-form/modules/requests/presentation/controllers"
	"github.com/OPMDOR/system-access-form/modules/requests/services"
	"github.com/OPMDOR/system-access-form/pkg/eventbus"
	"github.com/OPMDOR/system-access-form/pkg/excel"
	"github.com/OPMDOR/system-access-form/pkg/export"
	"github.com/OPMDOR/system-access-form/pkg/pdf"
)

// Module wires the request collection through the export engine up to the
// HTTP surface.
type Module struct {
	Repository request.Repository
	Exporter   *export.Exporter
	Service    *services.ExportService
	Controller *controllers.ExportController
}

func NewModule(records []*request.Request, bus eventbus.EventBus, log *logrus.Logger, opts ...export.Option) *Module {
	repo := persistence.NewInMemoryRequestRepository(records)
	exporterOpts := append([]export.Option{
		export.WithLogger(log),
		export.WithWorkbookFactory(excel.NewWorkbook),
		export.WithDocumentFactory(pdf.NewDocument),
	}, opts...)
	exporter := export.New(repo, exporterOpts...)
	svc := services.NewExportService(exporter, bus, log)
	return &Module{
		Repository: repo,
		Exporter:   exporter,
		Service:    svc,
		Controller: controllers.NewExportController(svc),
	}
}

func (m *Module) Register(r *mux.Router) {
	m.Controller.Register(r)
}

func (m *Module) Name() string {
	return "requests"
}
