// Package main provides a CLI tool for generating test tokens for the Eye Candy API.
// These tokens use the dev signing key and will NOT work in production.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	jwttoken "eyecandy/internal/jwt_token"
	"eyecandy/internal/platform/config"
	id "eyecandy/pkg/domain"
)

// Default admin token for local/dev environments
const devAdminToken = "demo-admin-token"

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	ExpiresIn string            `json:"expires_in,omitempty"`
	Claims    map[string]any    `json:"claims,omitempty"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	memberCmd := flag.NewFlagSet("member", flag.ExitOnError)
	performerCmd := flag.NewFlagSet("performer", flag.ExitOnError)
	adminCmd := flag.NewFlagSet("admin", flag.ExitOnError)

	memberID := memberCmd.String("viewer-id", "", "Viewer ID (UUID). Generated if empty.")
	memberTTL := memberCmd.Duration("ttl", config.DefaultTokenTTL, "Token time-to-live")
	memberKey := memberCmd.String("signing-key", config.DefaultJWTSigningKey, "HS256 signing key")
	memberJSON := memberCmd.Bool("json", false, "Output as JSON")

	performerID := performerCmd.String("performer-id", "", "Performer ID (UUID). Generated if empty.")
	performerTTL := performerCmd.Duration("ttl", config.DefaultTokenTTL, "Token time-to-live")
	performerKey := performerCmd.String("signing-key", config.DefaultJWTSigningKey, "HS256 signing key")
	performerJSON := performerCmd.Bool("json", false, "Output as JSON")

	adminJSON := adminCmd.Bool("json", false, "Output as JSON")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "member":
		memberCmd.Parse(os.Args[2:])
		generateViewerToken("member", *memberID, *memberKey, *memberTTL, *memberJSON)
	case "performer":
		performerCmd.Parse(os.Args[2:])
		generateViewerToken("performer", *performerID, *performerKey, *performerTTL, *performerJSON)
	case "admin":
		adminCmd.Parse(os.Args[2:])
		showAdminToken(*adminJSON)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Generate test tokens for the Eye Candy API

WARNING: These tokens use the dev signing key by default and will NOT work in production.
         Only use for local development and testing.

Usage:
  tokengen <command> [flags]

Commands:
  member     Generate a member bearer token
  performer  Generate a performer bearer token (for /performers/me routes)
  admin      Show the admin API token

Examples:
  # Member token with a random viewer id
  tokengen member

  # Performer token for a known profile
  tokengen performer -performer-id "550e8400-e29b-41d4-a716-446655440000"

  # Get admin token for X-Admin-Token header
  tokengen admin

  # Output as JSON
  tokengen member -json

Use "tokengen <command> -h" for more information about a command.`)
}

func generateViewerToken(viewerType, rawID, signingKey string, ttl time.Duration, jsonOutput bool) {
	viewerID := id.ViewerID(parseOrGenerateUUID(rawID, viewerType+"-id"))
	svc := jwttoken.NewJWTService(signingKey, config.DefaultJWTIssuer, config.DefaultJWTAudience, ttl)

	token, jti, err := svc.GenerateViewerToken(context.Background(), viewerID, viewerType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token:     token,
			Type:      viewerType + "_token",
			ExpiresIn: ttl.String(),
			Claims: map[string]any{
				"viewer_id":   viewerID.String(),
				"viewer_type": viewerType,
				"jti":         jti,
			},
			Usage: map[string]string{
				"header": "Authorization: Bearer <token>",
			},
		})
		return
	}

	fmt.Printf("%s token (JWT)\n", viewerType)
	fmt.Println("==================")
	fmt.Printf("Expires In:  %s\n", ttl)
	fmt.Printf("Viewer ID:   %s\n", viewerID)
	fmt.Printf("Viewer Type: %s\n", viewerType)
	fmt.Printf("JTI:         %s\n", jti)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -X POST -H \"Authorization: Bearer <token>\" http://localhost:8080/profiles/<performer-id>/access")
}

func showAdminToken(jsonOutput bool) {
	if jsonOutput {
		printJSON(tokenOutput{
			Token: devAdminToken,
			Type:  "admin_token",
			Usage: map[string]string{
				"header": "X-Admin-Token: " + devAdminToken,
				"note":   "Set ADMIN_API_TOKEN to this value on the server",
			},
		})
		return
	}
	fmt.Println("Admin API Token")
	fmt.Println("===============")
	fmt.Printf("Token: %s\n", devAdminToken)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"X-Admin-Token: " + devAdminToken + "\" http://localhost:8080/internal/entitlements")
	fmt.Println()
	fmt.Println("Note: the server must run with ADMIN_API_TOKEN set to this value")
}

func parseOrGenerateUUID(input, fieldName string) uuid.UUID {
	if input == "" {
		return uuid.New()
	}
	parsed, err := uuid.Parse(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid %s UUID: %s\n", fieldName, input)
		os.Exit(1)
	}
	return parsed
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
