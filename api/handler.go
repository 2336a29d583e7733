package api

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/medportal-org/portal/chatbot"
	"github.com/medportal-org/portal/doctors"
	"github.com/medportal-org/portal/parser"
	"github.com/medportal-org/portal/patients"
	"github.com/medportal-org/portal/records"
	"github.com/medportal-org/portal/store"
)

type Handler struct {
	patients patients.Service
	records  records.Service
	doctors  doctors.Service
	chatbot  *chatbot.Chatbot
	parser   *parser.ReportParser
	logger   *zap.SugaredLogger
}

type Params struct {
	fx.In

	Patients patients.Service
	Records  records.Service
	Doctors  doctors.Service
	Chatbot  *chatbot.Chatbot
	Parser   *parser.ReportParser
	Logger   *zap.SugaredLogger
}

func NewHandler(p Params) *Handler {
	return &Handler{
		patients: p.Patients,
		records:  p.Records,
		doctors:  p.Doctors,
		chatbot:  p.Chatbot,
		parser:   p.Parser,
		logger:   p.Logger,
	}
}

func pagination(offset, limit *int) store.Pagination {
	page := store.DefaultPagination()
	if offset != nil {
		page.Offset = *offset
	}
	if limit != nil {
		page.Limit = *limit
	}
	return page
}
