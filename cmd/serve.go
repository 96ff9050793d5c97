package cmd

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/pianoscribe/constants"
	"github.com/jsphweid/pianoscribe/model"
	"github.com/jsphweid/pianoscribe/pitch"
	"github.com/jsphweid/pianoscribe/quantize"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var port string

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", constants.GetPort(), "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves quantization over HTTP",
	Long:  `Serves POST /quantize, GET /pitch/{name} and GET /health`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info().Str("port", port).Msg("listening")
		return http.ListenAndServe(":"+port, NewHandler())
	},
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/quantize", HandleQuantize).Methods("POST")
	router.HandleFunc("/pitch/{name}", HandlePitch).Methods("GET")
	router.HandleFunc("/health", handleHealth).Methods("GET")
	return router
}

// NewHandler is the router wrapped for browser clients.
func NewHandler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(NewRouter())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), model.ErrorResponse{Error: err.Error()})
}

// statusFor maps bad input to 400 and input the quantizer could not make
// sense of to 422.
func statusFor(err error) int {
	var (
		configErr *quantize.ConfigError
		arithErr  *quantize.ArithmeticError
		desyncErr *quantize.DesyncError
		domainErr *pitch.DomainError
		nameErr   *pitch.NameError
	)
	switch {
	case errors.As(err, &configErr), errors.As(err, &nameErr), errors.As(err, &domainErr):
		return http.StatusBadRequest
	case errors.Is(err, quantize.ErrNoOnsets), errors.As(err, &arithErr), errors.As(err, &desyncErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

func requestConfig(body *model.QuantizeRequestBody) (quantize.Config, error) {
	cfg := quantize.DefaultConfig()
	mode, err := quantize.ParseMode(body.Mode)
	if err != nil {
		return cfg, err
	}
	cfg.Mode = mode
	if body.Clusters != nil {
		cfg.Clusters = *body.Clusters
	}
	if body.Seed != nil {
		cfg.Seed = *body.Seed
	}
	if body.Terminator != nil {
		cfg.Terminator = model.RhythmValue(*body.Terminator)
	}
	if body.Tempo != nil {
		cfg.TempoGuess = *body.Tempo
	}
	if body.BeatsPerMeasure != nil {
		cfg.BeatsPerMeasure = *body.BeatsPerMeasure
	}
	if body.Tolerance != nil {
		cfg.Tolerance = *body.Tolerance
	}
	if body.Alpha != nil {
		cfg.Alpha = *body.Alpha
	}
	if body.Beta != nil {
		cfg.Beta = *body.Beta
	}
	if body.Gamma != nil {
		cfg.Gamma = *body.Gamma
	}
	if body.MinRefit != nil {
		cfg.MinRefitOnsets = *body.MinRefit
	}
	if body.ChordWindow != nil {
		cfg.ChordWindow = *body.ChordWindow
	}
	return cfg, cfg.Validate()
}

func HandleQuantize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBytes)
	var body model.QuantizeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, errors.Wrap(err, "could not decode request body"))
		return
	}
	if len(body.Onsets) > constants.MaxOnsetsPerRequest {
		writeError(w, errors.Errorf("at most %d onsets per request", constants.MaxOnsetsPerRequest))
		return
	}
	if body.Pitches != nil && len(body.Pitches) != len(body.Onsets) {
		writeError(w, errors.Errorf("got %d pitches for %d onsets", len(body.Pitches), len(body.Onsets)))
		return
	}

	cfg, err := requestConfig(&body)
	if err != nil {
		writeError(w, err)
		return
	}

	notes := make(model.Notes, len(body.Onsets))
	for i, t := range body.Onsets {
		notes[i].Time = t
		if body.Pitches != nil {
			notes[i].Pitch = body.Pitches[i]
		}
	}
	if body.PitchBoundary {
		if body.Pitches == nil {
			writeError(w, errors.New("pitch_boundary needs pitches"))
			return
		}
		window := quantize.DefaultPitchWindow
		if body.PitchWindow != nil {
			window = *body.PitchWindow
		}
		cfg.Boundary = quantize.PitchBoundary(notes, window)
	}

	t, err := transcribe("request", notes, cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func HandlePitch(w http.ResponseWriter, r *http.Request) {
	res, err := lookupPitch(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
