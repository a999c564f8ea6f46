// seed_catalogo carga el catálogo de productos (productos.json) desde un CSV.
//
// Uso: go run ./cmd/seed_catalogo [-data DIR] [-latin1] catalogo.csv
// Sin -data usa DATA_DIR resuelto igual que el servidor (.env, config/config.env, entorno).
// Cabecera esperada: id,nombre,desc,precio,categoria,activo,imagen
// (categoria, activo e imagen son opcionales). Reemplaza el catálogo completo.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/filestore"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// options argumentos de línea de comandos.
type options struct {
	dataDir string
	latin1  bool
	csvPath string
}

// parseArgs interpreta los argumentos. defaultDataDir viene de la configuración (DATA_DIR).
func parseArgs(args []string, defaultDataDir string) (options, error) {
	fs := flag.NewFlagSet("seed_catalogo", flag.ContinueOnError)
	opts := options{csvPath: "catalogo.csv"}
	fs.StringVar(&opts.dataDir, "data", defaultDataDir, "directorio de datos")
	fs.BoolVar(&opts.latin1, "latin1", false, "el CSV viene en ISO-8859-1 (exportado desde Excel)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		opts.csvPath = fs.Arg(0)
	}
	return opts, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_catalogo"})

	opts, err := parseArgs(os.Args[1:], cfg.Store.DataDir)
	if err != nil {
		os.Exit(2)
	}

	f, err := os.Open(opts.csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", opts.csvPath).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if opts.latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	products, err := parseCatalog(r)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	store, err := filestore.NewStore(opts.dataDir, log.Component("filestore"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de datos")
	}
	if err := filestore.ReplaceProducts(store, products); err != nil {
		log.Fatal().Err(err).Msg("escribir productos.json")
	}
	log.Info().Int("productos", len(products)).Str("file", store.Path(filestore.CollectionProductos)).Msg("catálogo cargado")
}

var requiredColumns = []string{"id", "nombre", "desc", "precio"}

// parseCatalog lee el CSV completo. Los IDs deben ser enteros positivos y únicos.
func parseCatalog(r io.Reader) ([]*entity.Product, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("CSV vacío")
		}
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}
	get := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	seen := make(map[int]bool)
	var products []*entity.Product
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		id, err := strconv.Atoi(get(row, "id"))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("línea %d: id inválido %q", line, get(row, "id"))
		}
		if seen[id] {
			return nil, fmt.Errorf("línea %d: id %d repetido", line, id)
		}
		seen[id] = true
		precio, err := decimal.NewFromString(get(row, "precio"))
		if err != nil || precio.IsNegative() {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, get(row, "precio"))
		}
		activo := true
		if v := get(row, "activo"); v != "" {
			activo, err = strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("línea %d: activo inválido %q", line, v)
			}
		}
		products = append(products, &entity.Product{
			ID:        id,
			Nombre:    get(row, "nombre"),
			Desc:      get(row, "desc"),
			Precio:    precio,
			Categoria: get(row, "categoria"),
			Activo:    activo,
			Imagen:    get(row, "imagen"),
		})
	}
	return products, nil
}
