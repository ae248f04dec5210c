package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/skillpath-app/backend/configs"
	"github.com/skillpath-app/backend/database"
	"github.com/skillpath-app/backend/models"
	"github.com/skillpath-app/backend/utils"
)

// GenerateRoadmapCertificate renders and uploads a completion certificate for
// a finished roadmap. Meant to run in its own goroutine after the first
// complete_roadmap award; failures are logged, never surfaced to the learner.
func GenerateRoadmapCertificate(userID, roadmapID uuid.UUID) {
	if config.Config("CLOUDINARY_URL") == "" {
		log.Println("⚠️ CLOUDINARY_URL not set, skipping certificate generation")
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		log.Printf("🔥 Certificate: failed to load user %s: %v", userID, err)
		return
	}

	var roadmap models.Roadmap
	if err := database.DB.Preload("Skill").First(&roadmap, "id = ?", roadmapID).Error; err != nil {
		log.Printf("🔥 Certificate: failed to load roadmap %s: %v", roadmapID, err)
		return
	}

	courseTitle := fmt.Sprintf("%s - %d Week Roadmap", roadmap.Skill.Name, roadmap.DurationWeeks)

	var existing models.Certificate
	if err := database.DB.Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).First(&existing).Error; err == nil {
		return
	}

	serial, err := utils.GenerateCertificateSerial(database.DB)
	if err != nil {
		log.Printf("🔥 Certificate: failed to generate serial: %v", err)
		return
	}

	htmlData, err := renderCertificateHTML(user.FullName, courseTitle, serial)
	if err != nil {
		log.Printf("🔥 Certificate: failed to render HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Certificate: failed to generate PDF: %v", err)
		return
	}

	uploadURL, err := uploadCertificatePDF(pdfBytes, userID.String())
	if err != nil {
		log.Printf("🔥 Certificate: failed to upload to Cloudinary: %v", err)
		return
	}

	cert := models.Certificate{
		UserID:         userID,
		RoadmapID:      roadmapID,
		Serial:         serial,
		CourseTitle:    courseTitle,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}

	if err := database.DB.Create(&cert).Error; err != nil {
		log.Printf("🔥 Certificate: failed to save record for user %s: %v", userID, err)
	} else {
		log.Printf("✅ Generated certificate '%s' (%s) for user %s.", courseTitle, serial, userID)
	}
}

func renderCertificateHTML(learnerName, courseTitle, serial string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		LearnerName    string
		CourseTitle    string
		Serial         string
		CompletionDate string
	}{
		LearnerName:    learnerName,
		CourseTitle:    courseTitle,
		Serial:         serial,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadCertificatePDF(fileBytes []byte, userID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", userID, uuid.New().String()),
		Folder:       "skillpath_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
