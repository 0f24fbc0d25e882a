package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	jwtmw "advisor_backend/internal/platform/jwt"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a service token for the HTTP API",
	Long: `Token signs a JWT with the transform scope for --subject. The secret is read
from ADVISOR_JWT_SECRET, the jwt_secret config key or JWT_SECRET.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().String("subject", "", "client id written into the token (required)")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	secret := viper.GetString("jwt_secret")
	if secret == "" {
		secret = os.Getenv(jwtmw.EnvKeyJWTSecret)
	}
	if secret == "" {
		return errors.New("jwt secret is not configured")
	}

	token, err := jwtmw.NewGenerator(secret, ttl).GenerateToken(subject)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
