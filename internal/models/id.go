package models

// GetID lets output formatters extract the numeric ID without
// knowing the concrete type.
func (t *Task) GetID() int { return t.ID }

// GetID returns the project's numeric ID.
func (p *Project) GetID() int { return p.ID }

// GetID returns the product's numeric ID.
func (p *Product) GetID() int { return p.ID }

// GetID returns the intervention's numeric ID.
func (i *Intervention) GetID() int { return i.ID }

// GetID returns the user's numeric ID.
func (u *User) GetID() int { return u.ID }
