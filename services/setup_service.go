package services

import (
	"errors"
	"log"
	"time"

	"github.com/motoshop/motoshop-api/models"
	"gorm.io/gorm"
)

// SetupService handles first-run provisioning: the admin account and the
// sample data an empty deployment starts with.
type SetupService struct {
	DB *gorm.DB
}

func NewSetupService(db *gorm.DB) *SetupService {
	return &SetupService{DB: db}
}

// ErrMissingAdminPassword is returned when admin provisioning runs without
// an externally supplied secret.
var ErrMissingAdminPassword = errors.New("admin password not configured")

// EnsureAdminUser creates the admin account on first run. The password must
// be supplied externally; there is no built-in default credential. When the
// account already exists nothing happens, so a later password change is not
// overwritten at restart.
func (s *SetupService) EnsureAdminUser(username, password string) error {
	var count int64
	if err := s.DB.Model(&models.AdminUser{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		return ErrMissingAdminPassword
	}
	admin := models.AdminUser{Username: username}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Provisioned admin user %q", username)
	return nil
}

// SeedCatalog populates an empty catalog with the shop's sample listings.
// A catalog that already has rows is left untouched.
func (s *SetupService) SeedCatalog() error {
	var count int64
	if err := s.DB.Model(&models.Motorcycle{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := s.DB.Create(sampleMotorcycles()).Error; err != nil {
		return err
	}
	log.Printf("Seeded catalog with %d sample motorcycles", len(sampleMotorcycles()))
	return nil
}

// SeedInvoices populates an empty invoice table with sample records.
func (s *SetupService) SeedInvoices() error {
	var count int64
	if err := s.DB.Model(&models.Invoice{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := s.DB.Create(sampleInvoices()).Error; err != nil {
		return err
	}
	log.Println("Seeded sample invoices")
	return nil
}

func sampleMotorcycles() []models.Motorcycle {
	return []models.Motorcycle{
		{Brand: "Benelli", Model: "Leoncino 500", Year: 2023, Price: 6999.00, Description: "Una scrambler moderna con diseño italiano y un motor bicilíndrico emocionante.", ImagePath: "benelli-leoncino-500.png"},
		{Brand: "CFMoto", Model: "650NK", Year: 2024, Price: 6499.00, Description: "Naked de media cilindrada, potente y ágil, con un estilo agresivo.", ImagePath: "cfmoto-650nk.png"},
		{Brand: "Hero", Model: "Xtreme 160R", Year: 2023, Price: 2500.00, Description: "Moto deportiva urbana con un rendimiento ágil y eficiente para el día a día.", ImagePath: "hero-xtreme-160r.png"},
		{Brand: "Honda", Model: "CB1000R", Year: 2024, Price: 12999.00, Description: "Neo Sports Café, una naked de diseño minimalista con el potente motor de la Fireblade.", ImagePath: "honda-cb1000r.png"},
		{Brand: "Kawasaki", Model: "Z900RS", Year: 2023, Price: 11999.00, Description: "Un tributo moderno a la Z1 original, con un estilo retro y un rendimiento de vanguardia.", ImagePath: "kawasaki-z900rs.png"},
		{Brand: "Keeway", Model: "K-Light 202", Year: 2022, Price: 3199.00, Description: "Cruiser compacta con un estilo clásico y fácil manejo para la ciudad.", ImagePath: "keeway-k-light-202.png"},
		{Brand: "KTM", Model: "1290 Super Duke R", Year: 2024, Price: 19999.00, Description: "La 'Bestia' de KTM, una hypernaked con un motor V-Twin brutal y componentes de alta gama.", ImagePath: "ktm-1290-super-duke-r.png"},
		{Brand: "Motomel", Model: "Skua 250", Year: 2023, Price: 3499.00, Description: "Una moto trail versátil, diseñada para afrontar terrenos variados con comodidad y robustez.", ImagePath: "motomel-skua-250.png"},
		{Brand: "Royal Enfield", Model: "Continental GT 650", Year: 2024, Price: 7499.00, Description: "Cafe racer clásica con un diseño atemporal y un motor bicilíndrico suave.", ImagePath: "royal-enfield-continental-gt-650.png"},
		{Brand: "Serna", Model: "RX400", Year: 2023, Price: 4200.00, Description: "Trail de aventura, robusta y preparada para explorar cualquier camino, con un buen equilibrio entre carretera y off-road.", ImagePath: "serna-rx400.png"},
		{Brand: "Super Soco", Model: "TC Max", Year: 2024, Price: 5499.00, Description: "Motocicleta eléctrica de estilo urbano y prestaciones sorprendentes, ideal para la movilidad sostenible.", ImagePath: "super-soco-tc-max.png"},
		{Brand: "Suzuki", Model: "GSX-R1000R", Year: 2023, Price: 16000.00, Description: "Superbike pura, diseñada para ofrecer el máximo rendimiento en pista y una experiencia de conducción inigualable.", ImagePath: "suzuki-gsx-r1000r.png"},
		{Brand: "TVS", Model: "Apache RR 310", Year: 2024, Price: 4500.00, Description: "Sportbike carenada con un diseño agresivo y tecnología inspirada en las carreras.", ImagePath: "tvs-apache-rr-310.png"},
		{Brand: "UM", Model: "DSR Adventure 200", Year: 2023, Price: 3800.00, Description: "Una motocicleta de doble propósito diseñada para la aventura, con un rendimiento sólido en carretera y fuera de ella.", ImagePath: "um-dsr-adventure-200.png"},
		{Brand: "Vespa", Model: "GTS 300 SuperTech", Year: 2024, Price: 8500.00, Description: "El scooter más potente de Vespa, combina la conectividad y la tecnología con el icónico estilo italiano.", ImagePath: "vespa-gts-300-supertech.png"},
		{Brand: "Ducati", Model: "Panigale V4 R", Year: 2024, Price: 42995.00, Description: "La Panigale V4 R es la expresión máxima de la deportividad Ducati, con un motor de 998 cc derivado de MotoGP.", ImagePath: "ducati-panigale-v4-r.png"},
		{Brand: "BMW", Model: "S 1000 RR", Year: 2024, Price: 18995.00, Description: "La BMW S 1000 RR es una superbike de alto rendimiento, diseñada para la pista pero igualmente impresionante en carretera.", ImagePath: "bmw-s-1000-rr.png"},
		{Brand: "Triumph", Model: "Speed Triple 1200 RS", Year: 2024, Price: 18500.00, Description: "La Speed Triple 1200 RS es la naked deportiva definitiva de Triumph, con un rendimiento explosivo y tecnología avanzada.", ImagePath: "triumph-speed-triple-1200-rs.png"},
		{Brand: "Yamaha", Model: "YZF-R1M", Year: 2024, Price: 26999.00, Description: "La Yamaha YZF-R1M es la versión más exclusiva de la R1, con componentes de competición y telemetría avanzada.", ImagePath: "yamaha-yzf-r1m.png"},
		{Brand: "Harley-Davidson", Model: "Nightster Special", Year: 2024, Price: 14999.00, Description: "La Harley-Davidson Nightster Special combina la tradición cruiser con un motor Revolution Max 975T de última generación.", ImagePath: "harley-davidson-nightster-special.png"},
	}
}

func sampleInvoices() []models.Invoice {
	return []models.Invoice{
		{
			InvoiceNumber:    "INV-20250615-0001",
			CustomerName:     "Juan Pérez",
			CustomerAddress:  "Calle Falsa 123, Ciudad",
			CustomerEmail:    "juan.perez@example.com",
			InvoiceDate:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			ItemsDescription: "1x Honda CB1000R, 1x Casco Integral",
			SubtotalAmount:   13500.00,
			TaxRate:          0.16,
			TaxAmount:        2160.00,
			TotalAmount:      15660.00,
			Notes:            "Entrega a domicilio coordinada.",
		},
		{
			InvoiceNumber:    "INV-20250614-0002",
			CustomerName:     "María Gómez",
			CustomerAddress:  "Av. Siempre Viva 742, Pueblo",
			CustomerEmail:    "maria.gomez@example.com",
			InvoiceDate:      time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			ItemsDescription: "1x Kawasaki Z900RS",
			SubtotalAmount:   11999.00,
			TaxRate:          0.16,
			TaxAmount:        1919.84,
			TotalAmount:      13918.84,
			Notes:            "Cliente recurrente, descuento especial.",
		},
	}
}
