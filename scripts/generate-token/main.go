// generate-token issues a signed tenant access token for local development
// and testing.
//
// Usage: go run ./scripts/generate-token <tenant-id>
//
// The signing secret is read from the JWT_SECRET environment variable and
// must match the one the server is configured with.
//
// Flags:
//
//	-ttl   Token lifetime (default: 24h)
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func main() {
	ttl := flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-ttl=24h] <tenant-id>\n", os.Args[0])
		os.Exit(1)
	}

	tenantID, err := uuid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid tenant ID %q: %v\n", args[0], err)
		os.Exit(1)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"tenantId": tenantID.String(),
		"iat":      now.Unix(),
		"exp":      now.Add(*ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tenant:  %s\n", tenantID)
	fmt.Printf("Expires: %s\n", now.Add(*ttl).Format(time.RFC3339))
	fmt.Printf("\n%s\n", signed)
}
