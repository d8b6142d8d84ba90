package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"aqua-support-be/internal/config"
	"aqua-support-be/internal/entity"
	"aqua-support-be/internal/repository/unitofwork"
	"aqua-support-be/pkg/database"
	"aqua-support-be/pkg/embedding"
	"aqua-support-be/pkg/embedding/jina"
	"aqua-support-be/pkg/utils"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type seedDocument struct {
	Title       string
	ContentType string
	URL         string
	Category    string
	Tags        []string
	Content     string
}

var seedDocuments = []seedDocument{
	{
		Title:       "AquaReef Pro Salt Mix",
		ContentType: "product",
		URL:         "https://aquareef.example.com/products/pro-salt-mix",
		Category:    "salt",
		Tags:        []string{"salt", "reef", "mixing"},
		Content: `AquaReef Pro Salt Mix is a fully synthetic salt formulated for SPS and LPS reef aquariums.
Mixing ratio: 38 grams per liter of RO/DI water gives a salinity of 35 ppt (specific gravity 1.026).
Dissolve with strong circulation at 22-25°C and use within 2 hours of reaching full clarity.
Target parameters after mixing: KH 7.8 dKH, calcium 440 mg/l, magnesium 1340 mg/l.
Never add salt directly into the display tank. Store the bucket sealed in a dry place.`,
	},
	{
		Title:       "Reef Boost Coral Food",
		ContentType: "product",
		URL:         "https://aquareef.example.com/products/reef-boost",
		Category:    "nutrition",
		Tags:        []string{"coral", "feeding", "dosage"},
		Content: `Reef Boost is a suspension of zooplankton and amino acids for corals.
Dosage: 1 drop per 25 liters of tank volume, once daily, preferably after lights out.
In tanks with heavy skimming the dose can be doubled. Shake well before use and refrigerate after opening.
Overdosing may raise nitrate and phosphate levels; reduce the dose if algae growth accelerates.`,
	},
	{
		Title:       "Starting a reef tank: the first 6 weeks",
		ContentType: "guide",
		URL:         "https://aquareef.example.com/guides/first-six-weeks",
		Category:    "startup",
		Tags:        []string{"cycle", "startup", "beginner"},
		Content: `Week 1: fill with RO/DI water, mix salt to 35 ppt, start circulation and heating at 25°C.
Week 2-3: introduce bacterial starter cultures and a small ammonia source. Test ammonia and nitrite every other day.
Week 4: once ammonia and nitrite read zero, add the cleanup crew.
Week 5-6: add the first hardy corals. Keep KH stable at 7-8 dKH and check salinity weekly.
Do not add fish before the cycle is complete. Patience in the first six weeks prevents most later problems.`,
	},
	{
		Title:       "Troubleshooting: brown algae film on sand",
		ContentType: "faq",
		URL:         "https://aquareef.example.com/faq/brown-algae",
		Category:    "algae",
		Tags:        []string{"diatoms", "algae", "troubleshooting"},
		Content: `A brown film on sand and rock in a young tank is almost always diatoms feeding on silicates.
Diatoms usually disappear on their own within 2-4 weeks once silicates are consumed.
Speed this up by using RO/DI water with a fresh silicate-removing resin, gentle siphoning of the sand surface,
and adding sand-sifting snails. In mature tanks persistent diatoms point to a failing RO membrane.`,
	},
	{
		Title:       "Alkalinity drops quickly: causes and fixes",
		ContentType: "article",
		URL:         "https://aquareef.example.com/articles/alkalinity-drops",
		Category:    "chemistry",
		Tags:        []string{"kh", "alkalinity", "dosing"},
		Content: `Fast alkalinity consumption is normal in tanks with growing stony corals.
Measure KH at the same time each day for a week to establish the daily demand.
Match the demand with a two-part dosing system or a calcium reactor; never chase numbers with large single doses.
A KH swing of more than 1 dKH per day stresses corals and can trigger tissue necrosis.
Keep KH between 7 and 9 dKH and change no faster than 0.5 dKH per day.`,
	},
	{
		Title:       "Protein skimmer tuning guide",
		ContentType: "guide",
		URL:         "https://aquareef.example.com/guides/skimmer-tuning",
		Category:    "equipment",
		Tags:        []string{"skimmer", "equipment", "maintenance"},
		Content: `Run a new skimmer for 1-2 weeks before judging performance; the pump and body need a bacterial film to foam properly.
Set the water level just below the neck base for wet skimmate, lower for dry skimmate.
Clean the neck weekly and the pump every 3 months. A skimmer that suddenly overflows usually reacts
to additives, medication, or a dead animal in the tank, not to a mechanical fault.`,
	},
}

func main() {
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("%s Failed to connect to database: %v", red("[FAIL]"), err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "jina":
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
	default:
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	uow := uowFactory.NewUnitOfWork(ctx)

	fmt.Println(cyan("Seeding admin user..."))
	seedAdmin(ctx, uow, cfg)

	fmt.Println(cyan("Seeding knowledge base..."))
	for _, sd := range seedDocuments {
		doc := entity.KbDocument{
			Id:          uuid.New(),
			Title:       sd.Title,
			Content:     sd.Content,
			ContentType: sd.ContentType,
			URL:         sd.URL,
			Category:    sd.Category,
			Tags:        sd.Tags,
			CreatedAt:   time.Now(),
		}
		if err := uow.KbDocumentRepository().Create(ctx, &doc); err != nil {
			log.Fatalf("%s Failed to create document %q: %v", red("[FAIL]"), sd.Title, err)
		}

		content := fmt.Sprintf("Title: %s\nType: %s\nCategory: %s\nTags: %s\n\n%s",
			doc.Title, doc.ContentType, doc.Category, strings.Join(doc.Tags, ", "), doc.Content)

		chunks := utils.SplitText(content, 1500, 200)
		var embeddings []*entity.KbEmbedding
		for i, chunk := range chunks {
			res, err := embeddingProvider.Generate(chunk, embedding.TaskRetrievalDocument)
			if err != nil {
				log.Fatalf("%s Failed to embed chunk %d of %q: %v", red("[FAIL]"), i, sd.Title, err)
			}
			embeddings = append(embeddings, &entity.KbEmbedding{
				Id:             uuid.New(),
				Chunk:          chunk,
				EmbeddingValue: res.Embedding.Values,
				DocumentId:     doc.Id,
				ChunkIndex:     i,
				CreatedAt:      time.Now(),
			})
		}
		if err := uow.KbEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
			log.Fatalf("%s Failed to store embeddings for %q: %v", red("[FAIL]"), sd.Title, err)
		}

		fmt.Printf("%s %s (%d chunks)\n", green("[OK]"), sd.Title, len(chunks))
	}

	fmt.Println(green("Seed complete."))
}

func seedAdmin(ctx context.Context, uow unitofwork.UnitOfWork, cfg *config.Config) {
	email := "admin@aquareef.example.com"

	existing, err := uow.AdminUserRepository().FindByEmail(ctx, email)
	if err != nil {
		log.Fatalf("[FAIL] Failed to check admin user: %v", err)
	}
	if existing != nil {
		fmt.Printf("[SKIP] Admin %s already exists\n", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme-please"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("[FAIL] Failed to hash password: %v", err)
	}

	admin := entity.AdminUser{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "AquaReef Admin",
		CreatedAt:    time.Now(),
	}
	if err := uow.AdminUserRepository().Create(ctx, &admin); err != nil {
		log.Fatalf("[FAIL] Failed to create admin user: %v", err)
	}
	fmt.Printf("[OK] Admin %s created (default password: changeme-please)\n", email)
}
