package api

import (
	"net/http"
	"time"

	"homeboard/internal/authz"
	"homeboard/internal/domain"
)

type createHomeBody struct {
	Address      string   `json:"address"`
	City         string   `json:"city"`
	Price        float64  `json:"price"`
	PropertyType string   `json:"property_type"`
	Bedrooms     int64    `json:"bedrooms"`
	Bathrooms    int64    `json:"bathrooms"`
	LandSize     float64  `json:"land_size"`
	Images       []string `json:"images,omitempty"`
}

type updateHomeBody struct {
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	PropertyType *string  `json:"property_type,omitempty"`
	Bedrooms     *int64   `json:"bedrooms,omitempty"`
	Bathrooms    *int64   `json:"bathrooms,omitempty"`
	LandSize     *float64 `json:"land_size,omitempty"`
}

type inquiryBody struct {
	Message string `json:"message"`
}

type homeResponse struct {
	ID           int64     `json:"id"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Price        float64   `json:"price"`
	PropertyType string    `json:"property_type"`
	Bedrooms     int64     `json:"bedrooms"`
	Bathrooms    int64     `json:"bathrooms"`
	LandSize     float64   `json:"land_size"`
	RealtorID    int64     `json:"realtor_id"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

type homeSummaryResponse struct {
	ID           int64   `json:"id"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Price        float64 `json:"price"`
	PropertyType string  `json:"property_type"`
	Bedrooms     int64   `json:"bedrooms"`
	Bathrooms    int64   `json:"bathrooms"`
	LandSize     float64 `json:"land_size"`
	Image        string  `json:"image,omitempty"`
}

type messageResponse struct {
	ID        int64     `json:"id"`
	HomeID    int64     `json:"home_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type inquiryListItem struct {
	messageResponse
	BuyerName  string `json:"buyer_name"`
	BuyerEmail string `json:"buyer_email"`
	BuyerPhone string `json:"buyer_phone,omitempty"`
}

func toHomeResponse(home *domain.Home) homeResponse {
	images := home.Images
	if images == nil {
		images = []string{}
	}
	return homeResponse{
		ID:           home.ID,
		Address:      home.Address,
		City:         home.City,
		Price:        home.Price,
		PropertyType: string(home.PropertyType),
		Bedrooms:     home.Bedrooms,
		Bathrooms:    home.Bathrooms,
		LandSize:     home.LandSize,
		RealtorID:    home.RealtorID,
		Images:       images,
		CreatedAt:    home.CreatedAt,
	}
}

func (h *Handler) listHomes(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorize(w, r, authz.OpListHomes); !ok {
		return
	}

	q := r.URL.Query()
	filter, err := domain.ParseHomeFilter(domain.FilterParams{
		City:         q.Get("city"),
		MinPrice:     q.Get("minPrice"),
		MaxPrice:     q.Get("maxPrice"),
		PropertyType: q.Get("propertyType"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	summaries, err := h.homes.Search(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]homeSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, homeSummaryResponse{
			ID:           s.ID,
			Address:      s.Address,
			City:         s.City,
			Price:        s.Price,
			PropertyType: string(s.PropertyType),
			Bedrooms:     s.Bedrooms,
			Bathrooms:    s.Bathrooms,
			LandSize:     s.LandSize,
			Image:        s.Image,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getHome(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authorize(w, r, authz.OpGetHome); !ok {
		return
	}

	id, err := homeIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	home, err := h.homes.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHomeResponse(home))
}

func (h *Handler) createHome(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authorize(w, r, authz.OpCreateHome)
	if !ok {
		return
	}

	var body createHomeBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	home, err := h.homes.Create(r.Context(), principal, &domain.CreateHomeRequest{
		Address:      body.Address,
		City:         body.City,
		Price:        body.Price,
		PropertyType: domain.PropertyType(body.PropertyType),
		Bedrooms:     body.Bedrooms,
		Bathrooms:    body.Bathrooms,
		LandSize:     body.LandSize,
		Images:       body.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toHomeResponse(home))
}

func (h *Handler) updateHome(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authorize(w, r, authz.OpUpdateHome)
	if !ok {
		return
	}

	id, err := homeIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body updateHomeBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	req := domain.UpdateHomeRequest{
		Address:   body.Address,
		City:      body.City,
		Price:     body.Price,
		Bedrooms:  body.Bedrooms,
		Bathrooms: body.Bathrooms,
		LandSize:  body.LandSize,
	}
	if body.PropertyType != nil {
		pt := domain.PropertyType(*body.PropertyType)
		req.PropertyType = &pt
	}

	home, err := h.homes.Update(r.Context(), principal, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHomeResponse(home))
}

func (h *Handler) deleteHome(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authorize(w, r, authz.OpDeleteHome)
	if !ok {
		return
	}

	id, err := homeIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.homes.Delete(r.Context(), principal, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) inquire(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authorize(w, r, authz.OpInquire)
	if !ok {
		return
	}

	id, err := homeIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body inquiryBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.homes.Inquire(r.Context(), principal, &domain.InquiryRequest{
		HomeID: id,
		Body:   body.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{
		ID:        msg.ID,
		HomeID:    msg.HomeID,
		Message:   msg.Body,
		CreatedAt: msg.CreatedAt,
	})
}

func (h *Handler) listInquiries(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authorize(w, r, authz.OpListInquiries)
	if !ok {
		return
	}

	id, err := homeIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	msgs, err := h.homes.ListInquiries(r.Context(), principal, id)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]inquiryListItem, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, inquiryListItem{
			messageResponse: messageResponse{
				ID:        m.ID,
				HomeID:    m.HomeID,
				Message:   m.Body,
				CreatedAt: m.CreatedAt,
			},
			BuyerName:  m.BuyerName,
			BuyerEmail: m.BuyerEmail,
			BuyerPhone: m.BuyerPhone,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
