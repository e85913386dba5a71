// Command loadtest fires concurrent bookings at a running server and checks
// that no seat was handed out twice.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"seatbook/internal/auth"
	"seatbook/internal/shared/config"
	"seatbook/internal/shared/constants"
	"seatbook/internal/users"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type BookingResult struct {
	UserID       string        `json:"user_id"`
	StatusCode   int           `json:"status_code"`
	SeatIDs      []uint        `json:"seat_ids,omitempty"`
	ResponseTime time.Duration `json:"response_time"`
	Error        string        `json:"error,omitempty"`
}

type LoadTestSuite struct {
	BaseURL string
	Secret  string
	client  *http.Client

	mu      sync.Mutex
	Results []BookingResult
}

type apiResponse struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	workers := flag.Int("users", 20, "concurrent users")
	perBooking := flag.Int("seats", 4, "seats per booking")
	reset := flag.Bool("reset", true, "reset the venue first (uses an admin token)")
	baseURL := flag.String("url", fmt.Sprintf("http://localhost:%s%s", cfg.Port, cfg.GetAPIBasePath()), "API base URL")
	flag.Parse()

	suite := &LoadTestSuite{
		BaseURL: *baseURL,
		Secret:  cfg.JWT.Secret,
		client:  &http.Client{Timeout: 30 * time.Second},
	}

	fmt.Println("🧪 Starting booking load test...")
	fmt.Println("================================")

	if *reset {
		status, resp, err := suite.call(http.MethodPost, "/seats/reset", suite.token(uuid.New(), users.RoleAdmin), nil)
		if err != nil || status != http.StatusOK {
			log.Fatalf("❌ Reset failed: %v %s", err, resp.Message)
		}
		fmt.Println("✅ Venue reset")
	}

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			suite.book(*perBooking)
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	suite.generateReport(elapsed)
	suite.checkCache(cfg)
}

func (s *LoadTestSuite) token(id uuid.UUID, role users.Role) string {
	token, err := auth.IssueAccessToken(s.Secret, id, "", role, time.Hour)
	if err != nil {
		log.Fatalf("❌ Failed to issue token: %v", err)
	}
	return token
}

func (s *LoadTestSuite) call(method, path, token string, body interface{}) (int, apiResponse, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, apiResponse{}, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.BaseURL+path, reader)
	if err != nil {
		return 0, apiResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, apiResponse{}, err
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return resp.StatusCode, out, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, out, nil
}

func (s *LoadTestSuite) book(count int) {
	userID := uuid.New()
	start := time.Now()
	status, resp, err := s.call(http.MethodPost, "/bookings", s.token(userID, users.RoleUser), map[string]int{"numberOfSeats": count})

	result := BookingResult{
		UserID:       userID.String(),
		StatusCode:   status,
		ResponseTime: time.Since(start),
	}
	switch {
	case err != nil:
		result.Error = err.Error()
	case status == http.StatusCreated:
		var created struct {
			Seats []struct {
				SeatID uint `json:"seatId"`
			} `json:"seats"`
		}
		if err := json.Unmarshal(resp.Data, &created); err != nil {
			result.Error = err.Error()
		}
		for _, seat := range created.Seats {
			result.SeatIDs = append(result.SeatIDs, seat.SeatID)
		}
	default:
		result.Error = resp.Message
	}

	s.mu.Lock()
	s.Results = append(s.Results, result)
	s.mu.Unlock()
}

func (s *LoadTestSuite) generateReport(elapsed time.Duration) {
	fmt.Println("\n📊 BOOKING LOAD REPORT")
	fmt.Println("======================")

	byStatus := map[int]int{}
	owners := map[uint]string{}
	doubleBooked := 0
	var latencies []time.Duration

	for _, result := range s.Results {
		byStatus[result.StatusCode]++
		latencies = append(latencies, result.ResponseTime)
		for _, seatID := range result.SeatIDs {
			if owner, taken := owners[seatID]; taken {
				doubleBooked++
				fmt.Printf("   ❌ seat %d booked by %s and %s\n", seatID, owner, result.UserID)
			}
			owners[seatID] = result.UserID
		}
	}

	fmt.Printf("Requests: %d in %v\n", len(s.Results), elapsed)
	for status, n := range byStatus {
		fmt.Printf("  HTTP %d: %d\n", status, n)
	}
	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		fmt.Printf("Latency p50: %v  p95: %v  max: %v\n",
			latencies[len(latencies)/2],
			latencies[len(latencies)*95/100],
			latencies[len(latencies)-1])
	}
	fmt.Printf("Seats booked: %d\n", len(owners))

	if doubleBooked > 0 {
		log.Fatalf("❌ %d seats were double booked", doubleBooked)
	}
	fmt.Println("✅ No seat was booked twice")
}

// checkCache reads the seat count through the API and confirms Redis
// holds the cached copy
func (s *LoadTestSuite) checkCache(cfg *config.Config) {
	if !cfg.Redis.Enabled {
		return
	}

	token := s.token(uuid.New(), users.RoleUser)
	if _, _, err := s.call(http.MethodGet, "/seats/count", token, nil); err != nil {
		fmt.Printf("⚠️  Seat count request failed: %v\n", err)
		return
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	n, err := client.Exists(ctx, constants.CACHE_KEY_SEATS_COUNT).Result()
	if err != nil {
		fmt.Printf("⚠️  Redis check failed: %v\n", err)
		return
	}
	if n == 1 {
		fmt.Println("✅ Seat count is cached in Redis")
	} else {
		fmt.Println("⚠️  Seat count was not cached")
	}
}
