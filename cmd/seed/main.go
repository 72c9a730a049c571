// seed carga las aerolíneas y categorías por defecto en la cuenta de un usuario.
// Es idempotente: lo que ya existe (mismo nombre) se omite.
//
// Uso: go run ./cmd/seed <email>
package main

import (
	"context"
	"os"
	"strings"

	"github.com/gkdnizduru/finans-proje/internal/application/cached"
	"github.com/gkdnizduru/finans-proje/internal/application/dto"
	"github.com/gkdnizduru/finans-proje/internal/application/usecase"
	"github.com/gkdnizduru/finans-proje/internal/infrastructure/postgres"
	"github.com/gkdnizduru/finans-proje/pkg/config"
	"github.com/gkdnizduru/finans-proje/pkg/logger"
)

var defaultAirlines = []dto.AirlineRequest{
	{Name: "THY", Code: "TK"},
	{Name: "Pegasus", Code: "PC"},
	{Name: "AJet", Code: "VF"},
}

var defaultCategories = []dto.CategoryRequest{
	{Name: "Bilet Satışı", Type: "income", Color: "#2563eb"},
	{Name: "Otel Satışı", Type: "income", Color: "#16a34a"},
	{Name: "Tur Satışı", Type: "income", Color: "#9333ea"},
	{Name: "Komisyon Geliri", Type: "income", Color: "#0891b2"},
	{Name: "Kira", Type: "expense", Color: "#dc2626"},
	{Name: "Maaşlar", Type: "expense", Color: "#ea580c"},
	{Name: "Vergiler", Type: "expense", Color: "#ca8a04"},
	{Name: "Ofis Giderleri", Type: "expense", Color: "#64748b"},
}

func main() {
	if len(os.Args) < 2 {
		os.Stderr.WriteString("uso: seed <email>\n")
		os.Exit(2)
	}
	email := strings.ToLower(strings.TrimSpace(os.Args[1]))

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	user, err := postgres.NewUserRepository(pool).GetByEmail(ctx, email)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario")
	}
	if user == nil {
		log.Fatal().Str("email", email).Msg("usuario no encontrado")
	}

	// sin caché: el seed corre fuera del servidor
	reader := cached.NewReader(nil)
	airlineUC := usecase.NewAirlineUseCase(postgres.NewAirlineRepository(pool), reader)
	categoryUC := usecase.NewCategoryUseCase(postgres.NewCategoryRepository(pool), reader)

	existingAirlines, err := airlineUC.List(ctx, user.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("listar aerolíneas")
	}
	airlineNames := make(map[string]bool, len(existingAirlines))
	for _, a := range existingAirlines {
		airlineNames[strings.ToLower(a.Name)] = true
	}
	created := 0
	for _, a := range defaultAirlines {
		if airlineNames[strings.ToLower(a.Name)] {
			continue
		}
		if _, err := airlineUC.Create(ctx, user.ID, a); err != nil {
			log.Fatal().Err(err).Str("airline", a.Name).Msg("crear aerolínea")
		}
		created++
	}
	log.Info().Int("created", created).Msg("aerolíneas")

	existingCategories, err := categoryUC.List(ctx, user.ID, "")
	if err != nil {
		log.Fatal().Err(err).Msg("listar categorías")
	}
	categoryKeys := make(map[string]bool, len(existingCategories))
	for _, c := range existingCategories {
		categoryKeys[c.Type+"/"+strings.ToLower(c.Name)] = true
	}
	created = 0
	for _, c := range defaultCategories {
		if categoryKeys[c.Type+"/"+strings.ToLower(c.Name)] {
			continue
		}
		if _, err := categoryUC.Create(ctx, user.ID, c); err != nil {
			log.Fatal().Err(err).Str("category", c.Name).Msg("crear categoría")
		}
		created++
	}
	log.Info().Int("created", created).Str("email", email).Msg("categorías")
}
