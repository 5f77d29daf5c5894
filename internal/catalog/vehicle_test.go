package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVehicle(t *testing.T) {
	cases := []struct {
		service string
		want    Vehicle
	}{
		{"Körlektion BIL", VehicleBIL},
		{"Körlektion MC", VehicleMC},
		{"körlektion bil 50 min", VehicleBIL},
		{"AM Mopedutbildning", VehicleAM},
		{"AM Mopedutbildning helgkurs", VehicleAM},
		{"Mopedkurs helg", VehicleAM},

		// exclusion rules must win over the vehicle words they contain
		{"Risk 1 - Mopedbana", ""},
		{"Risk 2 - Halkbana BIL", ""},
		{"Riskettan BIL", ""},
		{"Risktvåan MC", ""},
		{"Introduktionskurs AM", ""},
		{"Handledarkurs BIL", ""},
		{"Intensivpaket BIL 10 lektioner", ""},
		{"Teorikurs BIL", ""},
		{"B96 utbildning", ""},

		{"Lokaluthyrning", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyVehicle(tc.service), "service %q", tc.service)
	}
}
