package openapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the authenticated /v1 operations.
type ServerInterface interface {
	// (GET /me)
	GetMe(w http.ResponseWriter, r *http.Request)
	// (PUT /me/account)
	SetAccountType(w http.ResponseWriter, r *http.Request)
	// (GET /me/worker-profile)
	GetWorkerProfile(w http.ResponseWriter, r *http.Request)
	// (PUT /me/worker-profile)
	PutWorkerProfile(w http.ResponseWriter, r *http.Request)
	// (GET /me/restaurant-profile)
	GetRestaurantProfile(w http.ResponseWriter, r *http.Request)
	// (PUT /me/restaurant-profile)
	PutRestaurantProfile(w http.ResponseWriter, r *http.Request)
	// (GET /profiles/{id}/ratings)
	GetProfileRatings(w http.ResponseWriter, r *http.Request, id string)
	// (GET /restaurants)
	ListRestaurants(w http.ResponseWriter, r *http.Request)

	// (GET /shifts)
	ListShifts(w http.ResponseWriter, r *http.Request)
	// (POST /shifts)
	CreateShift(w http.ResponseWriter, r *http.Request, params CreateShiftParams)
	// (GET /shifts/discover)
	DiscoverShifts(w http.ResponseWriter, r *http.Request, params DiscoverShiftsParams)
	// (POST /shifts/demo)
	GenerateDemoShifts(w http.ResponseWriter, r *http.Request)
	// (GET /shifts/{id})
	GetShift(w http.ResponseWriter, r *http.Request, id string)
	// (PATCH /shifts/{id})
	UpdateShift(w http.ResponseWriter, r *http.Request, id string)
	// (DELETE /shifts/{id})
	DeleteShift(w http.ResponseWriter, r *http.Request, id string)
	// (POST /shifts/{id}/publish)
	PublishShift(w http.ResponseWriter, r *http.Request, id string)
	// (POST /shifts/{id}/cancel)
	CancelShift(w http.ResponseWriter, r *http.Request, id string)
	// (POST /shifts/{id}/complete)
	CompleteShift(w http.ResponseWriter, r *http.Request, id string)
	// (POST /shifts/{id}/applications)
	ApplyToShift(w http.ResponseWriter, r *http.Request, id string, params ApplyToShiftParams)
	// (POST /shifts/{id}/applications/{workerId}/accept)
	AcceptApplication(w http.ResponseWriter, r *http.Request, id string, workerId string)
	// (POST /shifts/{id}/applications/{workerId}/decline)
	DeclineApplication(w http.ResponseWriter, r *http.Request, id string, workerId string)
	// (GET /shifts/{id}/messages)
	ListMessages(w http.ResponseWriter, r *http.Request, id string)
	// (POST /shifts/{id}/messages)
	PostMessage(w http.ResponseWriter, r *http.Request, id string)
	// (GET /shifts/{id}/chat/ws)
	WatchShift(w http.ResponseWriter, r *http.Request, id string)
	// (POST /shifts/{id}/ratings)
	RateShift(w http.ResponseWriter, r *http.Request, id string)

	// (GET /restaurant/shifts)
	ListRestaurantShifts(w http.ResponseWriter, r *http.Request, params ListRestaurantShiftsParams)
	// (GET /restaurant/shifts/export)
	ExportRestaurantShifts(w http.ResponseWriter, r *http.Request, params ListRestaurantShiftsParams)
	// (GET /worker/shifts)
	ListWorkerShifts(w http.ResponseWriter, r *http.Request)

	// (GET /geocode)
	Geocode(w http.ResponseWriter, r *http.Request, params GeocodeParams)
	// (GET /geocode/jobs/{id})
	GetGeocodeJob(w http.ResponseWriter, r *http.Request, id string)
}

type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper binds request parameters before calling the
// ServerInterface method.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

type TooManyValuesForParamError struct {
	ParamName string
	Count     int
}

func (e *TooManyValuesForParamError) Error() string {
	return fmt.Sprintf("Expected one value for %s, got %d", e.ParamName, e.Count)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	handler := http.Handler(fn)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return "", false
	}
	return v, true
}

func (siw *ServerInterfaceWrapper) idempotencyKey(w http.ResponseWriter, r *http.Request) (*string, bool) {
	const name = "X-Idempotency-Key"
	values, found := r.Header[http.CanonicalHeaderKey(name)]
	if !found {
		return nil, true
	}
	if n := len(values); n != 1 {
		siw.ErrorHandlerFunc(w, r, &TooManyValuesForParamError{ParamName: name, Count: n})
		return nil, false
	}
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, values[0], &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return nil, false
	}
	return &v, true
}

func (siw *ServerInterfaceWrapper) withID(fn func(w http.ResponseWriter, r *http.Request, id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := siw.pathParam(w, r, "id")
		if !ok {
			return
		}
		siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { fn(w, r, id) })
	}
}

func (siw *ServerInterfaceWrapper) plain(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { siw.serve(w, r, fn) }
}

func (siw *ServerInterfaceWrapper) CreateShift(w http.ResponseWriter, r *http.Request) {
	var params CreateShiftParams
	key, ok := siw.idempotencyKey(w, r)
	if !ok {
		return
	}
	params.XIdempotencyKey = key
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.CreateShift(w, r, params) })
}

func (siw *ServerInterfaceWrapper) ApplyToShift(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.pathParam(w, r, "id")
	if !ok {
		return
	}
	var params ApplyToShiftParams
	key, ok := siw.idempotencyKey(w, r)
	if !ok {
		return
	}
	params.XIdempotencyKey = key
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.ApplyToShift(w, r, id, params) })
}

func (siw *ServerInterfaceWrapper) decision(fn func(w http.ResponseWriter, r *http.Request, id, workerId string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := siw.pathParam(w, r, "id")
		if !ok {
			return
		}
		workerID, ok := siw.pathParam(w, r, "workerId")
		if !ok {
			return
		}
		siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { fn(w, r, id, workerID) })
	}
}

func (siw *ServerInterfaceWrapper) DiscoverShifts(w http.ResponseWriter, r *http.Request) {
	var params DiscoverShiftsParams
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dest any
	}{
		{"lat", &params.Lat},
		{"lng", &params.Lng},
		{"address", &params.Address},
		{"max_distance", &params.MaxDistance},
		{"min_rate", &params.MinRate},
		{"max_rate", &params.MaxRate},
		{"role", &params.Role},
		{"urgent_only", &params.UrgentOnly},
	} {
		if err := runtime.BindQueryParameter("form", true, false, p.name, q, p.dest); err != nil {
			siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: p.name, Err: err})
			return
		}
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.DiscoverShifts(w, r, params) })
}

func (siw *ServerInterfaceWrapper) restaurantShifts(fn func(w http.ResponseWriter, r *http.Request, params ListRestaurantShiftsParams)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params ListRestaurantShiftsParams
		if err := runtime.BindQueryParameter("form", true, false, "status", r.URL.Query(), &params.Status); err != nil {
			siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "status", Err: err})
			return
		}
		siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { fn(w, r, params) })
	}
}

func (siw *ServerInterfaceWrapper) Geocode(w http.ResponseWriter, r *http.Request) {
	var params GeocodeParams
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &params.Q); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { siw.Handler.Geocode(w, r, params) })
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions registers every ServerInterface route on the base router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	w := &ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}
	base := options.BaseURL

	r.Group(func(r chi.Router) {
		r.Get(base+"/me", w.plain(si.GetMe))
		r.Put(base+"/me/account", w.plain(si.SetAccountType))
		r.Get(base+"/me/worker-profile", w.plain(si.GetWorkerProfile))
		r.Put(base+"/me/worker-profile", w.plain(si.PutWorkerProfile))
		r.Get(base+"/me/restaurant-profile", w.plain(si.GetRestaurantProfile))
		r.Put(base+"/me/restaurant-profile", w.plain(si.PutRestaurantProfile))
		r.Get(base+"/profiles/{id}/ratings", w.withID(si.GetProfileRatings))
		r.Get(base+"/restaurants", w.plain(si.ListRestaurants))

		r.Get(base+"/shifts", w.plain(si.ListShifts))
		r.Post(base+"/shifts", w.CreateShift)
		r.Get(base+"/shifts/discover", w.DiscoverShifts)
		r.Post(base+"/shifts/demo", w.plain(si.GenerateDemoShifts))
		r.Get(base+"/shifts/{id}", w.withID(si.GetShift))
		r.Patch(base+"/shifts/{id}", w.withID(si.UpdateShift))
		r.Delete(base+"/shifts/{id}", w.withID(si.DeleteShift))
		r.Post(base+"/shifts/{id}/publish", w.withID(si.PublishShift))
		r.Post(base+"/shifts/{id}/cancel", w.withID(si.CancelShift))
		r.Post(base+"/shifts/{id}/complete", w.withID(si.CompleteShift))
		r.Post(base+"/shifts/{id}/applications", w.ApplyToShift)
		r.Post(base+"/shifts/{id}/applications/{workerId}/accept", w.decision(si.AcceptApplication))
		r.Post(base+"/shifts/{id}/applications/{workerId}/decline", w.decision(si.DeclineApplication))
		r.Get(base+"/shifts/{id}/messages", w.withID(si.ListMessages))
		r.Post(base+"/shifts/{id}/messages", w.withID(si.PostMessage))
		r.Get(base+"/shifts/{id}/chat/ws", w.withID(si.WatchShift))
		r.Post(base+"/shifts/{id}/ratings", w.withID(si.RateShift))

		r.Get(base+"/restaurant/shifts", w.restaurantShifts(si.ListRestaurantShifts))
		r.Get(base+"/restaurant/shifts/export", w.restaurantShifts(si.ExportRestaurantShifts))
		r.Get(base+"/worker/shifts", w.plain(si.ListWorkerShifts))

		r.Get(base+"/geocode", w.Geocode)
		r.Get(base+"/geocode/jobs/{id}", w.withID(si.GetGeocodeJob))
	})
	return r
}
