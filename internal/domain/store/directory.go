// Package store implementa el directorio de tiendas: el conjunto fijo de
// identificadores válidos contra el que se valida toda operación de inventario.
package store

// Directory consulta de solo lectura sobre el conjunto de tiendas configurado.
// No tiene persistencia propia: las tiendas llegan por configuración (STORE_IDS).
type Directory struct {
	ids map[string]struct{}
}

// NewDirectory construye el directorio a partir de la lista configurada.
func NewDirectory(storeIDs []string) *Directory {
	ids := make(map[string]struct{}, len(storeIDs))
	for _, id := range storeIDs {
		if id != "" {
			ids[id] = struct{}{}
		}
	}
	return &Directory{ids: ids}
}

// IsValid indica si el ID corresponde a una tienda registrada.
func (d *Directory) IsValid(storeID string) bool {
	_, ok := d.ids[storeID]
	return ok
}

// Len devuelve cuántas tiendas hay registradas.
func (d *Directory) Len() int { return len(d.ids) }
