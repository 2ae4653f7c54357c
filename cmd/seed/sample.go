package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/diamondgarment/backend/config"
	"github.com/diamondgarment/backend/models"
)

type creator[T any] interface {
	Create(ctx context.Context, in models.Input[T]) (*T, error)
}

type clearer interface {
	DeleteAll(ctx context.Context) (int64, error)
}

type collection struct {
	name  string
	store clearer
}

// seeder loads demo content through the content services so every sample is validated.
type seeder struct {
	products     creator[models.Product]
	gallery      creator[models.GalleryItem]
	testimonials creator[models.Testimonial]
	collections  []collection
}

// clear empties the named collections, or every collection when none are named.
func (s *seeder) clear(ctx context.Context, names ...string) error {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	logger := zerolog.Ctx(ctx)
	for _, c := range s.collections {
		if len(names) > 0 && !wanted[c.name] {
			continue
		}
		n, err := c.store.DeleteAll(ctx)
		if err != nil {
			return err
		}
		logger.Info().Str("collection", c.name).Int64("deleted", n).Msg("collection cleared")
	}
	return nil
}

// loadSamples replaces products, gallery items and testimonials with the demo set.
// Contact enquiries are left alone.
func (s *seeder) loadSamples(ctx context.Context) error {
	if err := s.clear(ctx, config.ProductsCollection, config.GalleryCollection, config.TestimonialsCollection); err != nil {
		return err
	}

	for _, in := range sampleProducts() {
		if _, err := s.products.Create(ctx, in); err != nil {
			return fmt.Errorf("sample product %q: %w", *in.Name, err)
		}
	}
	for _, in := range sampleGallery() {
		if _, err := s.gallery.Create(ctx, in); err != nil {
			return fmt.Errorf("sample gallery item %q: %w", *in.Title, err)
		}
	}
	for _, in := range sampleTestimonials() {
		if _, err := s.testimonials.Create(ctx, in); err != nil {
			return fmt.Errorf("sample testimonial %q: %w", *in.Name, err)
		}
	}

	zerolog.Ctx(ctx).Info().
		Int("products", len(sampleProducts())).
		Int("gallery", len(sampleGallery())).
		Int("testimonials", len(sampleTestimonials())).
		Msg("sample content loaded")
	return nil
}

func ptr[T any](v T) *T { return &v }

func image(raw string) *models.ImageRef {
	ref := models.ParseImageRef(raw)
	return &ref
}

const pexels = "?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1"

func sampleProducts() []models.ProductInput {
	product := func(name, photo string, category models.Category, description string, featured bool) models.ProductInput {
		return models.ProductInput{
			Name:        ptr(name),
			Image:       image("https://images.pexels.com/photos/" + photo + pexels),
			Category:    ptr(category),
			Description: ptr(description),
			Featured:    ptr(featured),
		}
	}
	return []models.ProductInput{
		product("Hospital Scrubs", "5327585/pexels-photo-5327585.jpeg", models.CategoryHospital, "Comfortable and durable hospital scrubs for medical professionals.", true),
		product("OT Gowns", "3279202/pexels-photo-3279202.jpeg", models.CategoryHospital, "Sterile operation theatre gowns for surgeons and medical staff.", false),
		product("Lab Coats", "5327859/pexels-photo-5327859.jpeg", models.CategoryHospital, "Professional lab coats for doctors, scientists, and laboratory technicians.", false),
		product("Primary School Uniform", "3933226/pexels-photo-3933226.jpeg", models.CategorySchool, "Comfortable and durable primary school uniforms for children.", true),
		product("High School Uniform", "5905901/pexels-photo-5905901.jpeg", models.CategorySchool, "Stylish and practical high school uniforms for teenagers.", false),
		product("Sports Jersey", "6183556/pexels-photo-6183556.jpeg", models.CategorySports, "High-performance sports jerseys for teams and individuals.", false),
		product("Track Suits", "5480849/pexels-photo-5480849.jpeg", models.CategorySports, "Comfortable and stylish track suits for sports and leisure.", false),
		product("Chef Uniform", "8975741/pexels-photo-8975741.jpeg", models.CategoryHotel, "Professional chef uniforms for kitchen staff and culinary professionals.", false),
		product("Hotel Staff Uniform", "5992472/pexels-photo-5992472.jpeg", models.CategoryHotel, "Elegant and professional uniforms for hotel staff and frontline personnel.", false),
		product("Factory Uniform", "8964391/pexels-photo-8964391.jpeg", models.CategoryIndustrial, "Durable and safe factory uniforms for industrial workers.", true),
		product("Scout Uniform", "6175156/pexels-photo-6175156.jpeg", models.CategoryScoutNCC, "Official scout uniforms for scouts and guides.", false),
		product("NCC Uniform", "3280130/pexels-photo-3280130.jpeg", models.CategoryScoutNCC, "Standard NCC uniforms for cadets and officers.", false),
	}
}

func sampleGallery() []models.GalleryInput {
	item := func(title, photo string, category models.Category) models.GalleryInput {
		return models.GalleryInput{
			Title:    ptr(title),
			Image:    image("https://images.pexels.com/photos/" + photo + pexels),
			Category: ptr(category),
		}
	}
	return []models.GalleryInput{
		item("Medical Staff Uniforms", "3401403/pexels-photo-3401403.jpeg", models.CategoryHospital),
		item("Nurse Uniforms", "4021775/pexels-photo-4021775.jpeg", models.CategoryHospital),
		item("School Uniforms", "5905959/pexels-photo-5905959.jpeg", models.CategorySchool),
		item("Sports Uniforms", "6177679/pexels-photo-6177679.jpeg", models.CategorySports),
		item("Chef Uniforms", "977367/pexels-photo-977367.jpeg", models.CategoryHotel),
		item("Factory Uniforms", "8964684/pexels-photo-8964684.jpeg", models.CategoryIndustrial),
		item("Scout Uniforms", "4553010/pexels-photo-4553010.jpeg", models.CategoryScoutNCC),
		item("Hospital Staff", "6615184/pexels-photo-6615184.jpeg", models.CategoryHospital),
		item("Student Uniforms", "5212701/pexels-photo-5212701.jpeg", models.CategorySchool),
	}
}

func sampleTestimonials() []models.TestimonialInput {
	testimonial := func(name, title, company, photo, text string, rating float64, featured bool) models.TestimonialInput {
		return models.TestimonialInput{
			Name:        ptr(name),
			Title:       ptr(title),
			Company:     ptr(company),
			Image:       image("https://images.pexels.com/photos/" + photo + pexels),
			Testimonial: ptr(text),
			Rating:      ptr(rating),
			Featured:    ptr(featured),
			Approved:    ptr(true),
		}
	}
	return []models.TestimonialInput{
		testimonial("Dr. Rajesh Patel", "Medical Director", "City Hospital", "5490276/pexels-photo-5490276.jpeg",
			"Diamond Garment has been our trusted partner for hospital uniforms for over 5 years. Their attention to detail and quality is exceptional. The staff uniforms are comfortable, durable, and meet all our hygiene standards. The team is professional and always delivers on time, making our procurement process seamless.",
			5, true),
		testimonial("Sarah D'Souza", "Principal", "St. Mary's School", "3785104/pexels-photo-3785104.jpeg",
			"We've been ordering school uniforms from Diamond Garment for our entire student body of over 800 students. The quality is consistently excellent, and their service is always professional and timely. They understand the unique requirements of educational institutions and deliver exactly what we need.",
			5, true),
		testimonial("Amit Shah", "HR Manager", "Industrial Solutions Ltd", "2381069/pexels-photo-2381069.jpeg",
			"The industrial uniforms provided by Diamond Garment meet all our safety standards while ensuring comfort for our workers. Their attention to specific requirements is commendable. The fabric quality is excellent and withstands the demanding industrial environment perfectly.",
			4, false),
		testimonial("Priya Sharma", "General Manager", "Grand Hotel", "3760263/pexels-photo-3760263.jpeg",
			"Outstanding quality and service! The hotel staff uniforms are elegant and practical. Diamond Garment understands the hospitality industry's needs perfectly. Our staff looks professional and feels comfortable throughout their shifts. Highly recommended for hospitality businesses.",
			5, true),
		testimonial("Ravi Kumar", "Operations Manager", "Tech Solutions Pvt Ltd", "2182970/pexels-photo-2182970.jpeg",
			"Diamond Garment has transformed our corporate uniform program. The quality of their corporate wear is exceptional, and the fit is perfect for all our employees. Their customer service team is responsive and always ready to accommodate our specific requirements and bulk orders.",
			5, false),
	}
}
