package alerts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// ensureClient returns a usable client instance
func ensureClient() *asynq.Client {
	if client == nil {
		Init()
	}
	return client
}

// EnqueueWelcomeEmail schedules a welcome email to the user
func EnqueueWelcomeEmail(userID, email, name string) error {
	base := os.Getenv("APP_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	base = strings.TrimRight(base, "/")

	greet := name
	if greet == "" {
		greet = "there"
	}
	subject := "Welcome to CouponHub!"
	body := fmt.Sprintf("Hi %s, thanks for joining CouponHub.\n\nList a coupon you won't use, or grab one before it expires: %s", greet, base)

	env := EmailEnvelope{To: email, Subject: subject, Body: body}
	payload := WelcomeEmailPayload{UserID: userID, Name: name, Email: email, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskWelcomeEmail, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueuePurchaseReceipt confirms a completed purchase to the buyer
func EnqueuePurchaseReceipt(transactionID, couponName, buyerID, buyerEmail string, amount float64) error {
	env := EmailEnvelope{
		To:      buyerEmail,
		Subject: "Your coupon purchase is confirmed",
		Body:    fmt.Sprintf("You bought %s for %.2f. Reference %s.", couponName, amount, transactionID),
	}
	payload := PurchaseReceiptPayload{TransactionID: transactionID, CouponName: couponName, BuyerID: buyerID, Email: buyerEmail, Amount: amount, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskPurchaseReceipt, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueueCouponSold tells the seller their listing was bought
func EnqueueCouponSold(transactionID, couponName, sellerID, sellerEmail string, amount float64) error {
	env := EmailEnvelope{
		To:      sellerEmail,
		Subject: "Your coupon has been sold",
		Body:    fmt.Sprintf("%s sold for %.2f. Reference %s.", couponName, amount, transactionID),
	}
	payload := CouponSoldPayload{TransactionID: transactionID, CouponName: couponName, SellerID: sellerID, Email: sellerEmail, Amount: amount, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskCouponSold, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueuePasswordReset schedules a password reset notification
func EnqueuePasswordReset(userID, email, resetURL, name string) error {
	expiry := os.Getenv("PASSWORD_RESET_EXP_MINUTES")
	if expiry == "" {
		expiry = "30"
	}
	greet := name
	if greet == "" {
		greet = "there"
	}
	subject := "Password reset instructions"
	body := fmt.Sprintf("Hello %s,\n\nWe received a request to reset your CouponHub password.\n\nTo proceed, open the link below:\n%s\n\nThis link expires in %s minutes. If you did not request this, no action is required.\n\n— CouponHub Team", greet, resetURL, expiry)

	env := EmailEnvelope{To: email, Subject: subject, Body: body}
	payload := PasswordResetPayload{UserID: userID, Email: email, ResetURL: resetURL, Envelope: env, Requested: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskPasswordReset, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}
