package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/omerdikyol/rayda/pkg/transit"
	"github.com/omerdikyol/rayda/pkg/util"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Load reads the full static dataset from a directory containing
// stations.csv, travel_times.csv, routes.yaml and tracks.geojson.
//
// A missing or corrupt geometry file is recoverable: the dataset comes back
// flagged DegradedGeometry and every segment ends up a straight-line
// fallback. Everything else is required.
func Load(directory string) (*Dataset, error) {
	// Allow us to ignore those naughty records that have missing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})

	stations, err := loadStations(filepath.Join(directory, "stations.csv"))
	if err != nil {
		return nil, err
	}

	travelTimes, err := loadTravelTimes(filepath.Join(directory, "travel_times.csv"))
	if err != nil {
		return nil, err
	}

	routesFile, err := loadRoutes(filepath.Join(directory, "routes.yaml"))
	if err != nil {
		return nil, err
	}

	for _, route := range routesFile.Routes {
		for _, stationID := range route.StationIDs {
			if stations[stationID] == nil {
				return nil, fmt.Errorf("route %s references unknown station %s", route.PrimaryIdentifier, stationID)
			}
		}
	}

	dataset := &Dataset{
		Stations:     stations,
		Routes:       routesFile.Routes,
		TravelTimes:  travelTimes,
		Exclusions:   util.RemoveDuplicateStrings(routesFile.Exclusions, nil),
		TrackFilters: routesFile.TrackFilters,
		Bounds:       routesFile.Bounds,
	}

	trackBytes, err := os.ReadFile(filepath.Join(directory, "tracks.geojson"))
	if err == nil {
		dataset.Polylines, err = ParseTrackGeometry(trackBytes)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Track geometry unavailable - running in straight-line mode")
		dataset.Polylines = nil
		dataset.DegradedGeometry = true
	}

	log.Info().
		Int("stations", len(dataset.Stations)).
		Int("routes", len(dataset.Routes)).
		Int("traveltimes", len(dataset.TravelTimes)).
		Int("polylines", len(dataset.Polylines)).
		Msg("Loaded dataset")

	return dataset, nil
}

func loadStations(path string) (map[string]*transit.Station, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stations table: %w", err)
	}
	defer file.Close()

	var records []StationRecord
	if err := gocsv.Unmarshal(file, &records); err != nil {
		return nil, fmt.Errorf("parsing stations table: %w", err)
	}

	stations := map[string]*transit.Station{}
	for _, record := range records {
		location := transit.NewLocation(record.Longitude, record.Latitude)

		stations[record.ID] = &transit.Station{
			PrimaryIdentifier:    record.ID,
			Name:                 record.Name,
			Location:             &location,
			DistanceFromOriginKM: record.DistanceFromOriginKM,
		}
	}

	return stations, nil
}

func loadTravelTimes(path string) (transit.TravelTimes, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening travel time table: %w", err)
	}
	defer file.Close()

	var records []TravelTimeRecord
	if err := gocsv.Unmarshal(file, &records); err != nil {
		return nil, fmt.Errorf("parsing travel time table: %w", err)
	}

	travelTimes := transit.TravelTimes{}
	for _, record := range records {
		travelTimes[transit.StationPair{From: record.FromStationID, To: record.ToStationID}] = record.Seconds
	}

	return travelTimes, nil
}

func loadRoutes(path string) (*RoutesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening routes file: %w", err)
	}

	routesFile, err := ParseRoutesFile(data)
	if err != nil {
		return nil, err
	}

	return routesFile, nil
}

// ParseRoutesFile decodes and validates a routes.yaml document.
func ParseRoutesFile(data []byte) (*RoutesFile, error) {
	var routesFile RoutesFile
	if err := yaml.Unmarshal(data, &routesFile); err != nil {
		return nil, fmt.Errorf("parsing routes file: %w", err)
	}

	v := validator.New()
	if err := v.Struct(routesFile); err != nil {
		return nil, fmt.Errorf("validating routes file: %w", err)
	}

	for _, route := range routesFile.Routes {
		if route.Termini[0] == "" && len(route.StationIDs) >= 2 {
			route.Termini = [2]string{route.StationIDs[0], route.StationIDs[len(route.StationIDs)-1]}
		}
	}

	return &routesFile, nil
}
