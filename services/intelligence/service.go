package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	bookingRepo "evcare/database/repository/booking"
	centerRepo "evcare/database/repository/center"
	predictionRepo "evcare/database/repository/prediction"
	"evcare/models"
	"evcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultHorizonDays = 30

// promptAppointmentLimit caps how much history is fed into a prompt.
const promptAppointmentLimit = 50

// DefaultPredictionService is the Gemini-backed PredictionService.
type DefaultPredictionService struct {
	Gemini   *GeminiClient
	Cache    *RedisPredictionCache
	Repo     predictionRepo.PredictionRepository
	Centers  centerRepo.CenterRepository
	Bookings bookingRepo.BookingRepository
}

func (s *DefaultPredictionService) GetLatest(centerID string) (*models.InventoryPrediction, error) {
	ctx := context.Background()

	if cached, err := s.Cache.Get(ctx, centerID); err == nil && cached != nil {
		return cached, nil
	}

	latest, err := s.Repo.GetLatest(centerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest prediction: %w", err)
	}
	if latest != nil {
		if err := s.Cache.Set(ctx, centerID, latest); err != nil {
			utils.GetLogger().Warn("Failed to cache prediction", zap.Error(err))
		}
		return latest, nil
	}

	return s.Regenerate(centerID, defaultHorizonDays)
}

func (s *DefaultPredictionService) Regenerate(centerID string, horizonDays int) (*models.InventoryPrediction, error) {
	if horizonDays <= 0 {
		horizonDays = defaultHorizonDays
	}

	center, err := s.Centers.GetByID(centerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load center: %w", err)
	}

	appointments, err := s.Bookings.GetByCenter(centerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment history: %w", err)
	}
	if len(appointments) > promptAppointmentLimit {
		appointments = appointments[:promptAppointmentLimit]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	prompt := buildPrompt(center, appointments, horizonDays)
	raw, err := s.Gemini.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate prediction: %w", err)
	}

	items, summary, err := parsePredictionResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prediction: %w", err)
	}

	prediction := &models.InventoryPrediction{
		ID:          uuid.New().String(),
		CenterID:    centerID,
		Model:       geminiModelName,
		HorizonDays: horizonDays,
		Items:       items,
		Summary:     summary,
		GeneratedAt: time.Now(),
	}
	if err := s.Repo.Create(prediction); err != nil {
		return nil, fmt.Errorf("failed to store prediction: %w", err)
	}
	if err := s.Cache.Set(context.Background(), centerID, prediction); err != nil {
		utils.GetLogger().Warn("Failed to cache prediction", zap.Error(err))
	}

	utils.GetLogger().Info("Inventory prediction generated",
		zap.String("centerID", centerID),
		zap.Int("items", len(items)))
	return prediction, nil
}

func (s *DefaultPredictionService) GetHistory(centerID string, limit int64) ([]models.InventoryPrediction, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.Repo.GetHistory(centerID, limit)
}

func (s *DefaultPredictionService) GetStats(centerID string) (*models.PredictionStats, error) {
	return s.Repo.GetStats(centerID)
}

// buildPrompt renders the forecasting request. The model must answer with a
// bare JSON object so parsePredictionResponse can decode it.
func buildPrompt(center *models.ServiceCenter, appointments []models.Appointment, horizonDays int) string {
	var sb strings.Builder
	sb.WriteString("You are an inventory planner for an electric-vehicle service center.\n")
	fmt.Fprintf(&sb, "Center: %s (%d technicians).\n", center.Name, len(center.Technicians))
	fmt.Fprintf(&sb, "Forecast spare-part demand for the next %d days based on these recent appointments:\n", horizonDays)
	for _, a := range appointments {
		fmt.Fprintf(&sb, "- %s: kind=%s service=%s priority=%s status=%s\n",
			a.AppointmentDate, a.Selection.Kind, a.Selection.ID, a.Priority, a.Status)
	}
	sb.WriteString("\nRespond with JSON only, no markdown, in this shape:\n")
	sb.WriteString(`{"summary":"...","items":[{"partName":"...","currentStock":0,"predictedDemand":0,"recommendedOrder":0,"confidence":0.0}]}`)
	return sb.String()
}

type predictionResponse struct {
	Summary string                  `json:"summary"`
	Items   []models.PredictionItem `json:"items"`
}

// parsePredictionResponse decodes the model output, tolerating markdown
// code fences around the JSON body.
func parsePredictionResponse(raw string) ([]models.PredictionItem, string, error) {
	body := strings.TrimSpace(raw)
	if strings.HasPrefix(body, "```") {
		body = strings.TrimPrefix(body, "```json")
		body = strings.TrimPrefix(body, "```")
		body = strings.TrimSuffix(strings.TrimSpace(body), "```")
		body = strings.TrimSpace(body)
	}

	var resp predictionResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, "", fmt.Errorf("unexpected model output: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, "", fmt.Errorf("model returned no prediction items")
	}
	return resp.Items, resp.Summary, nil
}
