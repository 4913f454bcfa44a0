package domain

// The *Fields types carry caller-supplied attributes for create and update.
// A nil pointer means "not supplied": Patch omits it, so a stored document
// keeps its current value. Identity fields (id, createdAt) have no
// counterpart here and can never be patched.

type CultureFields struct {
	Name         *string   `json:"name" validate:"omitempty,max=200"`
	PlantingDate *string   `json:"plantingDate" validate:"omitempty,max=40"`
	SeedName     *string   `json:"seedName" validate:"omitempty,max=200"`
	PlantCount   *Quantity `json:"plantCount" validate:"omitempty,gte=0"`
}

func (f *CultureFields) Apply(c *Culture) {
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.PlantingDate != nil {
		c.PlantingDate = *f.PlantingDate
	}
	if f.SeedName != nil {
		c.SeedName = *f.SeedName
	}
	if f.PlantCount != nil {
		c.PlantCount = *f.PlantCount
	}
}

func (f *CultureFields) Patch() map[string]any {
	p := make(map[string]any)
	setString(p, "name", f.Name)
	setString(p, "plantingDate", f.PlantingDate)
	setString(p, "seedName", f.SeedName)
	setQuantity(p, "plantCount", f.PlantCount)
	return p
}

type NoteFields struct {
	CultureID   *string   `json:"cultureId" validate:"omitempty,max=100"`
	CultureName *string   `json:"cultureName" validate:"omitempty,max=200"`
	Type        *NoteType `json:"type" validate:"omitempty,oneof=history harvest"`
	Title       *string   `json:"title" validate:"omitempty,max=200"`
	Content     *string   `json:"content" validate:"omitempty,max=10000"`
	Count       *Quantity `json:"count" validate:"omitempty,gte=0"`
	Notes       *string   `json:"notes" validate:"omitempty,max=10000"`
	Date        *string   `json:"date" validate:"omitempty,max=40"`
}

func (f *NoteFields) Apply(n *Note) {
	if f.CultureID != nil {
		n.CultureID = *f.CultureID
	}
	if f.CultureName != nil {
		n.CultureName = *f.CultureName
	}
	if f.Type != nil {
		n.Type = *f.Type
	}
	if f.Title != nil {
		n.Title = *f.Title
	}
	if f.Content != nil {
		n.Content = *f.Content
	}
	if f.Count != nil {
		n.Count = *f.Count
	}
	if f.Notes != nil {
		n.Notes = *f.Notes
	}
	if f.Date != nil {
		n.Date = *f.Date
	}
}

func (f *NoteFields) Patch() map[string]any {
	p := make(map[string]any)
	setString(p, "cultureId", f.CultureID)
	setString(p, "cultureName", f.CultureName)
	if f.Type != nil {
		p["type"] = string(*f.Type)
	}
	setString(p, "title", f.Title)
	setString(p, "content", f.Content)
	setQuantity(p, "count", f.Count)
	setString(p, "notes", f.Notes)
	setString(p, "date", f.Date)
	return p
}

type HarvestFields struct {
	CultureID   *string   `json:"cultureId" validate:"omitempty,max=100"`
	CultureName *string   `json:"cultureName" validate:"omitempty,max=200"`
	Count       *Quantity `json:"count" validate:"omitempty,gte=0"`
	Date        *string   `json:"date" validate:"omitempty,max=40"`
	Notes       *string   `json:"notes" validate:"omitempty,max=10000"`
}

func (f *HarvestFields) Apply(h *Harvest) {
	if f.CultureID != nil {
		h.CultureID = *f.CultureID
	}
	if f.CultureName != nil {
		h.CultureName = *f.CultureName
	}
	if f.Count != nil {
		h.Count = *f.Count
	}
	if f.Date != nil {
		h.Date = *f.Date
	}
	if f.Notes != nil {
		h.Notes = *f.Notes
	}
}

func (f *HarvestFields) Patch() map[string]any {
	p := make(map[string]any)
	setString(p, "cultureId", f.CultureID)
	setString(p, "cultureName", f.CultureName)
	setQuantity(p, "count", f.Count)
	setString(p, "date", f.Date)
	setString(p, "notes", f.Notes)
	return p
}

func setString(p map[string]any, key string, v *string) {
	if v != nil {
		p[key] = *v
	}
}

func setQuantity(p map[string]any, key string, v *Quantity) {
	if v != nil {
		p[key] = int(*v)
	}
}

// String and Qty return pointers for building field sets in code.
func String(s string) *string { return &s }

func Qty(n int) *Quantity {
	q := Quantity(n)
	return &q
}
