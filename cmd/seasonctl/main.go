// seasonctl roda o pipeline de análise da temporada direto sobre os
// arquivos de estoque e vendas, sem banco nem servidor.
package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/season-pricing-api/infrastructure/loader"
	"github.com/vfg2006/season-pricing-api/infrastructure/report"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/internal/usecases/aggregating"
	"github.com/vfg2006/season-pricing-api/internal/usecases/analyzing"
	"github.com/vfg2006/season-pricing-api/internal/usecases/matching"
	"github.com/vfg2006/season-pricing-api/internal/usecases/pricing"
	"github.com/vfg2006/season-pricing-api/internal/usecases/reporting"
	"github.com/vfg2006/season-pricing-api/internal/usecases/season"
)

type options struct {
	inventoryFile string
	salesDir      string
	outputDir     string
	date          string
	week          int
	seed          int64
}

func main() {
	opts := &options{}

	root := &cobra.Command{
		Use:          "seasonctl",
		Short:        "Análise de sell-through e preço da temporada promocional",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.inventoryFile, "inventory", "data/Inventory.txt", "arquivo do snapshot de estoque")
	root.PersistentFlags().StringVar(&opts.salesDir, "sales-dir", "data/sales", "diretório com os arquivos mensais de vendas")
	root.PersistentFlags().StringVar(&opts.outputDir, "out", "reports", "diretório de saída dos relatórios")
	root.PersistentFlags().StringVar(&opts.date, "date", "", "data de referência AAAA-MM-DD (padrão: hoje)")
	root.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "semente da sorte do ajuste sugerido (0 usa o relógio)")

	daily := &cobra.Command{
		Use:   "daily",
		Short: "Gera as recomendações diárias de preço",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, domain.RunModeDaily)
		},
	}

	weekly := &cobra.Command{
		Use:   "weekly",
		Short: "Gera o boletim de notas da semana",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, domain.RunModeWeekly)
		},
	}
	weekly.Flags().IntVar(&opts.week, "week", reporting.WeekLastCompleted,
		"semana da temporada (1 a 8; padrão: última concluída)")

	root.AddCommand(daily, weekly)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts *options, mode domain.RunMode) error {
	referenceDate := time.Now()
	if opts.date != "" {
		parsed, err := time.Parse(time.DateOnly, opts.date)
		if err != nil {
			return err
		}
		referenceDate = parsed
	}

	inventory, invStats, err := loader.NewInventoryLoader().Load(opts.inventoryFile)
	if err != nil {
		return err
	}

	sales, salesStats, err := loader.NewSalesLoader().LoadDir(opts.salesDir)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"inventory_loaded": invStats.Loaded,
		"sales_loaded":     salesStats.Loaded,
	}).Info("Arquivos de origem carregados")

	var rng *rand.Rand
	if opts.seed != 0 {
		rng = rand.New(rand.NewSource(opts.seed))
	}

	reporter := reporting.NewService(
		season.NewService(),
		matching.NewService(),
		aggregating.NewService(),
		analyzing.NewService(),
		pricing.NewService(rng),
		nil,
	)

	var analysisRun *domain.AnalysisRun
	if mode == domain.RunModeDaily {
		analysisRun, err = reporter.RunDaily(inventory, sales, referenceDate)
	} else {
		analysisRun, err = reporter.RunWeekly(inventory, sales, referenceDate, opts.week)
	}
	if err != nil {
		return err
	}

	csvPath, err := report.NewCSVWriter(opts.outputDir).Write(analysisRun)
	if err != nil {
		return err
	}

	xlsxPath, err := report.NewExcelWriter(opts.outputDir).Write(analysisRun)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"run_id":   analysisRun.ID,
		"week":     analysisRun.Week,
		"products": len(analysisRun.Results),
		"csv":      csvPath,
		"xlsx":     xlsxPath,
	}).Info("Análise concluída")

	return nil
}
