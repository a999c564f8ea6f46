package filestore

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Formato en disco de cada colección. Los campos ausentes toman su valor por defecto
// (activo ausente = true).

type productRecord struct {
	ID        int             `json:"id"`
	Nombre    string          `json:"nombre"`
	Desc      string          `json:"desc"`
	Precio    decimal.Decimal `json:"precio"`
	Categoria string          `json:"categoria,omitempty"`
	Activo    *bool           `json:"activo,omitempty"`
	Imagen    string          `json:"imagen,omitempty"`
}

type userRecord struct {
	ID           int    `json:"id"`
	Nombre       string `json:"nombre"`
	Apellido     string `json:"apellido"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Contrasena   string `json:"contrasena,omitempty"`
	Activo       *bool  `json:"activo,omitempty"`
}

type saleRecord struct {
	ID        int             `json:"id"`
	UserID    int             `json:"id_usuario"`
	Fecha     string          `json:"fecha"`
	Total     decimal.Decimal `json:"total"`
	Direccion string          `json:"direccion"`
	Productos []lineRecord    `json:"productos"`
	Pagado    bool            `json:"pagado"`
}

type lineRecord struct {
	ProductID      int             `json:"id_producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// idRecord se usa para leer solo el id de un registro crudo.
type idRecord struct {
	ID int `json:"id"`
}

func boolOrTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}

func (r productRecord) toEntity() *entity.Product {
	return &entity.Product{
		ID:        r.ID,
		Nombre:    r.Nombre,
		Desc:      r.Desc,
		Precio:    r.Precio,
		Categoria: r.Categoria,
		Activo:    boolOrTrue(r.Activo),
		Imagen:    r.Imagen,
	}
}

func productRecordFrom(p *entity.Product) productRecord {
	activo := p.Activo
	return productRecord{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Desc:      p.Desc,
		Precio:    p.Precio,
		Categoria: p.Categoria,
		Activo:    &activo,
		Imagen:    p.Imagen,
	}
}

func (r userRecord) toEntity() *entity.User {
	return &entity.User{
		ID:           r.ID,
		Nombre:       r.Nombre,
		Apellido:     r.Apellido,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Contrasena:   r.Contrasena,
		Activo:       boolOrTrue(r.Activo),
	}
}

func userRecordFrom(u *entity.User) userRecord {
	activo := u.Activo
	return userRecord{
		ID:           u.ID,
		Nombre:       u.Nombre,
		Apellido:     u.Apellido,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Contrasena:   u.Contrasena,
		Activo:       &activo,
	}
}

func (r saleRecord) toEntity() *entity.Sale {
	items := make([]entity.LineItem, 0, len(r.Productos))
	for _, l := range r.Productos {
		items = append(items, entity.LineItem{
			ProductID:      l.ProductID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
		})
	}
	return &entity.Sale{
		ID:        r.ID,
		UserID:    r.UserID,
		Fecha:     parseFecha(r.Fecha),
		Direccion: r.Direccion,
		Pagado:    r.Pagado,
		Items:     items,
		Total:     r.Total,
	}
}

func saleRecordFrom(s *entity.Sale) saleRecord {
	lines := make([]lineRecord, 0, len(s.Items))
	for _, it := range s.Items {
		lines = append(lines, lineRecord{
			ProductID:      it.ProductID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
		})
	}
	return saleRecord{
		ID:        s.ID,
		UserID:    s.UserID,
		Fecha:     s.Fecha.UTC().Format(time.RFC3339Nano),
		Total:     s.Total,
		Direccion: s.Direccion,
		Productos: lines,
		Pagado:    s.Pagado,
	}
}

// Formatos de fecha aceptados al leer ventas antiguas. Se escribe siempre RFC 3339.
var fechaLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// parseFecha devuelve el instante cero si la fecha no se reconoce.
func parseFecha(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range fechaLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// maxID devuelve el mayor id de una colección cruda.
func maxID(name string, raws []json.RawMessage) (int, error) {
	highest := 0
	for i, raw := range raws {
		var r idRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return 0, fmt.Errorf("%s.json: registro %d: %w", name, i, err)
		}
		if r.ID > highest {
			highest = r.ID
		}
	}
	return highest, nil
}

// indexOfID busca la posición del registro con ese id, -1 si no está.
func indexOfID(name string, raws []json.RawMessage, id int) (int, error) {
	for i, raw := range raws {
		var r idRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return -1, fmt.Errorf("%s.json: registro %d: %w", name, i, err)
		}
		if r.ID == id {
			return i, nil
		}
	}
	return -1, nil
}

// mergeRecord superpone los campos de rec sobre el registro crudo, conservando
// los campos que este paquete no conoce. Las claves en drop se eliminan.
func mergeRecord(raw json.RawMessage, rec any, drop ...string) (json.RawMessage, error) {
	base := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	overlay := make(map[string]json.RawMessage)
	if err := json.Unmarshal(encoded, &overlay); err != nil {
		return nil, err
	}
	for k, v := range overlay {
		base[k] = v
	}
	for _, k := range drop {
		delete(base, k)
	}
	return json.Marshal(base)
}
