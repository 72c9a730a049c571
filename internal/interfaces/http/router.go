package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gkdnizduru/finans-proje/internal/application/analytics"
	"github.com/gkdnizduru/finans-proje/internal/application/auth"
	"github.com/gkdnizduru/finans-proje/internal/application/billing"
	"github.com/gkdnizduru/finans-proje/internal/application/travel"
	"github.com/gkdnizduru/finans-proje/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CompanyUC     *usecase.CompanyUseCase
	CustomerUC    *usecase.CustomerUseCase
	DealUC        *usecase.DealUseCase
	ActivityUC    *usecase.ActivityUseCase
	ProductUC     *usecase.ProductUseCase
	CategoryUC    *usecase.CategoryUseCase
	AirlineUC     *usecase.AirlineUseCase
	AccountUC     *usecase.AccountUseCase
	TransactionUC *usecase.TransactionUseCase
	InvoiceUC     *billing.InvoiceUseCase
	QuoteUC       *billing.QuoteUseCase
	PDFUC         *billing.PDFUseCase
	PublicUC      *billing.PublicUseCase
	TicketUC      *travel.TicketUseCase
	HotelUC       *travel.HotelUseCase
	PNRUC         *travel.PNRUseCase
	DashboardUC   *analytics.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Enlaces públicos de documentos (token en la URL)
	public := api.Group("/public")
	publicHandler := NewPublicHandler(deps.PublicUC)
	public.Get("/invoices/:token", publicHandler.GetInvoice)
	public.Get("/quotes/:token", publicHandler.GetQuote)
	public.Post("/quotes/:token/status", publicHandler.RespondQuote)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	company := protected.Group("/company")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	company.Get("/", companyHandler.Get)
	company.Put("/", companyHandler.Save)
	company.Put("/logo", companyHandler.UploadLogo)
	company.Get("/logo", companyHandler.LogoURL)

	// CRM
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Post("/:id/notes", customerHandler.AddNote)
	customers.Get("/:id/notes", customerHandler.ListNotes)
	customers.Post("/:id/attachments", customerHandler.UploadAttachment)
	customers.Get("/:id/attachments", customerHandler.ListAttachments)
	protected.Delete("/notes/:noteId", customerHandler.DeleteNote)
	protected.Delete("/attachments/:attachmentId", customerHandler.DeleteAttachment)

	deals := protected.Group("/deals")
	dealHandler := NewDealHandler(deps.DealUC)
	deals.Post("/", dealHandler.Create)
	deals.Get("/", dealHandler.List)
	deals.Get("/:id", dealHandler.GetByID)
	deals.Put("/:id", dealHandler.Update)
	deals.Patch("/:id/stage", dealHandler.MoveStage)
	deals.Delete("/:id", dealHandler.Delete)

	activities := protected.Group("/activities")
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activities.Post("/", activityHandler.Create)
	activities.Get("/", activityHandler.List)
	activities.Get("/:id", activityHandler.GetByID)
	activities.Put("/:id", activityHandler.Update)
	activities.Post("/:id/complete", activityHandler.Complete)
	activities.Delete("/:id", activityHandler.Delete)

	// Catálogos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	airlines := protected.Group("/airlines")
	airlineHandler := NewAirlineHandler(deps.AirlineUC)
	airlines.Post("/", airlineHandler.Create)
	airlines.Get("/", airlineHandler.List)
	airlines.Put("/:id", airlineHandler.Update)
	airlines.Delete("/:id", airlineHandler.Delete)

	// Finanzas
	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Post("/", accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Put("/:id", accountHandler.Update)
	accounts.Delete("/:id", accountHandler.Delete)

	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Put("/:id", transactionHandler.Update)
	transactions.Delete("/:id", transactionHandler.Delete)

	// Facturación
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Delete("/:id", invoiceHandler.Delete)

	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.PDFUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Patch("/:id/status", quoteHandler.UpdateStatus)
	quotes.Post("/:id/convert", quoteHandler.Convert)
	quotes.Get("/:id/pdf", quoteHandler.DownloadPDF)
	quotes.Delete("/:id", quoteHandler.Delete)

	// Viajes
	tickets := protected.Group("/tickets")
	ticketHandler := NewTicketHandler(deps.TicketUC, deps.PNRUC)
	tickets.Post("/parse-pnr", ticketHandler.ParsePNR)
	tickets.Post("/", ticketHandler.Create)
	tickets.Get("/", ticketHandler.List)
	tickets.Get("/:id", ticketHandler.GetByID)
	tickets.Put("/:id", ticketHandler.Update)
	tickets.Post("/:id/invoice", ticketHandler.ToInvoice)
	tickets.Delete("/:id", ticketHandler.Delete)

	hotels := protected.Group("/hotels")
	hotelHandler := NewHotelHandler(deps.HotelUC)
	hotels.Post("/", hotelHandler.Create)
	hotels.Get("/", hotelHandler.List)
	hotels.Get("/:id", hotelHandler.GetByID)
	hotels.Put("/:id", hotelHandler.Update)
	hotels.Delete("/:id", hotelHandler.Delete)

	pricing := protected.Group("/pricing")
	pricingHandler := NewPricingHandler()
	pricing.Post("/lines", pricingHandler.Lines)
	pricing.Post("/commission", pricingHandler.Commission)

	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
