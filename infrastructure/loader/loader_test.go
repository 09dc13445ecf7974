package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/season-pricing-api/pkg/log"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestInventoryLoader_Load(t *testing.T) {
	loader := NewInventoryLoader()

	t.Run("Deve carregar linhas válidas resolvendo colunas pelo cabeçalho", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "inventory.txt",
			"seller-sku\tasin1\tprice\tquantity\n"+
				"SKU-1\tB000000001\t19.90\t40\n"+
				"SKU-2\tB000000002\t7.50\t0\n")

		records, stats, err := loader.Load(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 2, stats.Loaded)
		assert.Equal(t, 0, stats.Skipped)

		assert.Equal(t, "SKU-1", records[0].SKU)
		assert.Equal(t, "B000000001", records[0].ASIN)
		assert.True(t, records[0].Price.Equal(decimal.RequireFromString("19.90")))
		assert.Equal(t, 40, records[0].Quantity)
		assert.Equal(t, 0, records[1].Quantity)
	})

	t.Run("Deve aceitar colunas em ordem diferente da usual", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "inventory.txt",
			"quantity\tseller-sku\tprice\tasin1\n"+
				"12\tSKU-1\t5.00\tB000000001\n")

		records, _, err := loader.Load(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "SKU-1", records[0].SKU)
		assert.Equal(t, 12, records[0].Quantity)
	})

	t.Run("Deve pular linhas sem SKU e sem ASIN", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "inventory.txt",
			"seller-sku\tasin1\tprice\tquantity\n"+
				"\t\t10.00\t5\n"+
				"SKU-1\t\t10.00\t5\n")

		records, stats, err := loader.Load(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 1, stats.Skipped)
	})

	t.Run("Deve pular linhas com preço ou quantidade malformados", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "inventory.txt",
			"seller-sku\tasin1\tprice\tquantity\n"+
				"SKU-1\tB01\tabc\t5\n"+
				"SKU-2\tB02\t-3.00\t5\n"+
				"SKU-3\tB03\t10.00\t-1\n"+
				"SKU-4\tB04\t10.00\t5\n")

		records, stats, err := loader.Load(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "SKU-4", records[0].SKU)
		assert.Equal(t, 3, stats.Skipped)
	})

	t.Run("Deve retornar UnreadableSourceError para arquivo inexistente", func(t *testing.T) {
		_, _, err := loader.Load(filepath.Join(t.TempDir(), "nao-existe.txt"))
		require.Error(t, err)
		assert.True(t, IsUnreadableSource(err))
	})

	t.Run("Deve retornar UnreadableSourceError para cabeçalho sem identificadores", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "inventory.txt",
			"price\tquantity\n10.00\t5\n")

		_, _, err := loader.Load(path)
		require.Error(t, err)
		assert.True(t, IsUnreadableSource(err))
	})
}

func TestSalesLoader_LoadFile(t *testing.T) {
	loader := NewSalesLoader()

	t.Run("Deve carregar vendas normalizando a data de compra para UTC", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "9-2026.txt",
			"sku\tasin\tpurchase-date\tquantity\n"+
				"SKU-1\tB01\t2026-09-03T14:22:05-07:00\t2\n"+
				"SKU-2\tB02\t2026-09-10\t\n")

		records, stats, err := loader.LoadFile(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 2, stats.Loaded)

		require.NotNil(t, records[0].PurchaseDate)
		assert.Equal(t, time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC), *records[0].PurchaseDate)
		assert.Equal(t, 2, records[0].Quantity)

		// Quantidade ausente vale 1.
		assert.Equal(t, 1, records[1].Quantity)
	})

	t.Run("Deve manter a linha com data malformada e PurchaseDate nil", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "9-2026.txt",
			"sku\tasin\tpurchase-date\tquantity\n"+
				"SKU-1\tB01\tdata-invalida\t3\n")

		records, stats, err := loader.LoadFile(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Nil(t, records[0].PurchaseDate)
		assert.Equal(t, 1, stats.Loaded)
	})

	t.Run("Deve pular linhas com quantidade malformada ou negativa", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "9-2026.txt",
			"sku\tasin\tpurchase-date\tquantity\n"+
				"SKU-1\tB01\t2026-09-03\tabc\n"+
				"SKU-2\tB02\t2026-09-03\t-2\n"+
				"SKU-3\tB03\t2026-09-03\t4\n")

		records, stats, err := loader.LoadFile(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "SKU-3", records[0].SKU)
		assert.Equal(t, 2, stats.Skipped)
	})

	t.Run("Deve pular linhas sem SKU e sem ASIN", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "9-2026.txt",
			"sku\tasin\tpurchase-date\tquantity\n"+
				"\t\t2026-09-03\t1\n")

		records, stats, err := loader.LoadFile(path)
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.Equal(t, 1, stats.Skipped)
	})
}

func TestSalesLoader_LoadDir(t *testing.T) {
	loader := NewSalesLoader()

	t.Run("Deve agregar todos os arquivos mensais do diretório", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "10-2026.txt",
			"sku\tasin\tpurchase-date\tquantity\n"+
				"SKU-2\tB02\t2026-10-05\t3\n")
		writeFile(t, dir, "9-2026.txt",
			"sku\tasin\tpurchase-date\tquantity\n"+
				"SKU-1\tB01\t2026-09-03\t1\n")

		records, stats, err := loader.LoadDir(dir)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 2, stats.Loaded)
	})

	t.Run("Deve falhar quando o diretório não tem arquivos de vendas", func(t *testing.T) {
		_, _, err := loader.LoadDir(t.TempDir())
		require.Error(t, err)
		assert.True(t, IsUnreadableSource(err))
	})

	t.Run("Deve falhar a carga inteira quando um arquivo é ilegível", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "9-2026.txt",
			"sku\tasin\tpurchase-date\tquantity\n"+
				"SKU-1\tB01\t2026-09-03\t1\n")
		writeFile(t, dir, "10-2026.txt", "")

		_, _, err := loader.LoadDir(dir)
		require.Error(t, err)
		assert.True(t, IsUnreadableSource(err))
	})
}
