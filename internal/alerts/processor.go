package alerts

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/hibiken/asynq"
)

var (
	client *asynq.Client
	server *asynq.Server
)

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		port := os.Getenv("REDIS_PORT")
		if port == "" {
			port = "6379"
		}
		return host + ":" + port
	}
	if os.Getenv("RUN_LOCAL") == "true" {
		return "127.0.0.1:6379"
	}
	// compose service name when containerized
	return "redis:6379"
}

// Init connects the shared Asynq client and starts the email worker.
func Init() {
	opts := asynq.RedisClientOpt{Addr: redisAddr()}
	client = asynq.NewClient(opts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcomeEmail, handleWelcomeEmail)
	mux.HandleFunc(TaskPurchaseReceipt, handlePurchaseReceipt)
	mux.HandleFunc(TaskCouponSold, handleCouponSold)
	mux.HandleFunc(TaskPasswordReset, handlePasswordReset)

	server = asynq.NewServer(opts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"emails": 10,
		},
	})
	go func() {
		if err := server.Run(mux); err != nil {
			log.Printf("Asynq server stopped: %v", err)
		}
	}()

	log.Printf("Asynq initialized (addr=%s)", opts.Addr)
}

// Close releases the client and stops the worker.
func Close() {
	if client != nil {
		_ = client.Close()
	}
	if server != nil {
		server.Shutdown()
	}
}

// deliver sends one envelope and keeps the success/failure log lines uniform
// across task kinds.
func deliver(kind, to string, env EmailEnvelope) error {
	if err := SendEmail(to, env.Subject, env.Body); err != nil {
		log.Printf("[notify][ERROR] %s send failed: %v", kind, err)
		return err
	}
	log.Printf("[notify] %s sent -> to=%s", kind, to)
	return nil
}

func handleWelcomeEmail(_ context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	return deliver("WelcomeEmail", p.Email, p.Envelope)
}

func handlePurchaseReceipt(_ context.Context, t *asynq.Task) error {
	var p PurchaseReceiptPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	return deliver("PurchaseReceipt", p.Email, p.Envelope)
}

func handleCouponSold(_ context.Context, t *asynq.Task) error {
	var p CouponSoldPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	return deliver("CouponSold", p.Email, p.Envelope)
}

func handlePasswordReset(_ context.Context, t *asynq.Task) error {
	var p PasswordResetPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	return deliver("PasswordReset", p.Email, p.Envelope)
}
