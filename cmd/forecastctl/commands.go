package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-forecast-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-forecast-api/infrastructure/migration"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/internal/export"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-forecast-api/internal/usecases/forecasting"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	formatJSON = "json"
	formatXLSX = "xlsx"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "forecastctl",
		Short:         "Ferramentas de linha de comando da previsão de vendas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(cmd.ErrOrStderr())
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Exibe logs detalhados")

	rootCmd.AddCommand(forecastCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())

	return rootCmd
}

// forecastCmd calcula a previsão a partir de um CSV de pedidos, sem banco nem API
func forecastCmd() *cobra.Command {
	var (
		input         string
		horizonValue  string
		anchorValue   string
		format        string
		output        string
		varianceScale float64
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Calcula a previsão de vendas a partir de um CSV de pedidos",
		Long: `Lê linhas "amount,occurred_at" (cabeçalho opcional), agrega por mês
e projeta as vendas para o horizonte informado (1, 3, 6 ou 12 meses).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			horizon, err := domain.ParseHorizon(horizonValue)
			if err != nil {
				return err
			}

			anchor, err := parseAnchor(anchorValue, time.Now())
			if err != nil {
				return err
			}

			if format != formatJSON && format != formatXLSX {
				return fmt.Errorf("formato inválido %q: use json ou xlsx", format)
			}
			if format == formatXLSX && output == "" {
				return fmt.Errorf("o formato xlsx exige --output")
			}

			records, err := readOrdersFile(input)
			if err != nil {
				return err
			}

			result := forecasting.BuildForecast(records, horizon, anchor, forecasting.BuildOptions{
				VarianceScale: varianceScale,
			})

			return writeResult(cmd.OutOrStdout(), &result, format, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Arquivo CSV de pedidos (- para stdin)")
	cmd.Flags().StringVar(&horizonValue, "horizon", "3", "Horizonte em meses: 1, 3, 6 ou 12")
	cmd.Flags().StringVar(&anchorValue, "anchor", "", "Mês de referência yyyy-mm (padrão: mês atual)")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Formato de saída: json ou xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Arquivo de saída (padrão: stdout)")
	cmd.Flags().Float64Var(&varianceScale, "variance-scale", forecasting.DefaultVarianceScale, "Escala da penalidade de variância")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// migrateCmd aplica o DDL das tabelas do serviço usando a configuração do ambiente
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Cria as tabelas usadas pelos snapshots de previsão",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			conn, err := postgres.NewConnection(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
			}
			defer conn.Close()

			if err := migration.Apply(ctx, conn); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Migração aplicada com sucesso")
			return nil
		},
	}
}

// tokenCmd emite um token assinado com AUTH_SECRET para uso em ambientes de teste
func tokenCmd() *cobra.Command {
	var (
		userID int
		roleID int
		email  string
		ttl    time.Duration
		secret string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite um token JWT para chamar a API localmente",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("AUTH_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("informe --secret ou defina AUTH_SECRET")
			}

			service := authenticating.NewService(&config.Config{Auth: config.Auth{Secret: secret}})
			token, err := service.IssueToken(domain.Claims{
				UserID:     userID,
				UserEmail:  email,
				UserRoleID: roleID,
			}, ttl)
			if err != nil {
				return fmt.Errorf("erro ao assinar token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().IntVar(&userID, "user-id", 1, "ID do usuário")
	cmd.Flags().IntVar(&roleID, "role", 1, "Perfil: 1 administrador, 2 supervisor, 3 cliente")
	cmd.Flags().StringVar(&email, "email", "", "E-mail do usuário")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Validade do token")
	cmd.Flags().StringVar(&secret, "secret", "", "Segredo HS256 (padrão: AUTH_SECRET)")

	return cmd
}

// parseAnchor converte yyyy-mm no primeiro dia do mês; vazio usa o instante atual
func parseAnchor(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now.UTC(), nil
	}

	anchor, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("mês de referência inválido %q: use yyyy-mm", value)
	}
	return anchor, nil
}

func writeResult(stdout io.Writer, result *domain.ForecastResult, format, output string) error {
	w := stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("erro ao criar arquivo de saída: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == formatXLSX {
		return export.WriteForecast(w, result)
	}

	body, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("erro ao serializar previsão: %w", err)
	}
	_, err = fmt.Fprintln(w, string(body))
	return err
}
