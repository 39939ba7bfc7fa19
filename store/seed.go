package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/snap-point/activity-api/config"
	"github.com/snap-point/activity-api/models"
	"go.uber.org/zap"
)

type sample struct {
	name        string
	uid         string
	address     string
	coordinates string
	fun         string
	password    string
	dob         string
}

var samples = map[string][]sample{
	"activity": {
		{name: "Daves Hot Chicken", uid: "h1", address: "1268 Auto Park Way, Escondido, CA 92029", coordinates: "lat: 33.158350, lng: -117.032630", fun: "8/10"},
		{name: "Raising Canes", uid: "h2", address: "8223 Mira Mesa Blvd, San Diego, CA 92126", coordinates: "lat: 32.912239, lng: -117.147217", fun: "10/10"},
		{name: "Belmont Park", uid: "h3", address: "3146 Mission Blvd, San Diego, CA 92109", coordinates: "lat: 32.769939, lng: -117.251091", fun: "7/10"},
		{name: "Potato Chip Rock", uid: "h4", address: "Ramona, CA 92065", coordinates: "lat: 33.010290, lng: -116.947480", fun: "6/10"},
	},
	"user": {
		{name: "Thomas Edison", uid: "toby", address: "Menlo Park, NJ 08837", coordinates: "lat: 40.564540, lng: -74.336650", fun: "9/10", password: "123toby", dob: "02-11-1847"},
		{name: "Nicholas Tesla", uid: "niko", address: "Colorado Springs, CO 80903", coordinates: "lat: 38.833880, lng: -104.821360", fun: "8/10", password: "123niko"},
		{name: "Alexander Graham Bell", uid: "lex", address: "Baddeck, NS B0E 1B0", coordinates: "lat: 46.100680, lng: -60.753730", fun: "7/10", password: "123lex"},
		{name: "Eli Whitney", uid: "whit", address: "New Haven, CT 06511", coordinates: "lat: 41.308270, lng: -72.927880", fun: "6/10", password: "123whit"},
		{name: "John Mortensen", uid: "jm1021", address: "Del Norte High School, San Diego, CA 92127", coordinates: "lat: 33.002100, lng: -117.108900", fun: "10/10", dob: "10-21-1959"},
	},
}

// Seeder loads the sample records for every configured resource whose kind
// has samples. Records that already exist are skipped.
type Seeder struct {
	Store Store
	Log   *zap.Logger
	// PostCount decides how many posts each sample gets; one to three by default.
	PostCount func() int
}

func (s *Seeder) postCount() int {
	if s.PostCount != nil {
		return s.PostCount()
	}
	return rand.IntN(3) + 1
}

// Run returns the number of parents created.
func (s *Seeder) Run(ctx context.Context, resources []config.ResourceConfig) (int, error) {
	created := 0
	for _, res := range resources {
		for _, smp := range samples[res.Kind] {
			p, err := s.build(res.Kind, smp)
			if err != nil {
				return created, err
			}

			if _, err := s.Store.CreateParent(ctx, p); err != nil {
				if errors.Is(err, ErrIntegrity) {
					s.Log.Warn("Records exist, duplicate uid, or error",
						zap.String("resource", res.Name),
						zap.String("uid", smp.uid))
					continue
				}
				return created, fmt.Errorf("seed %s %s: %w", res.Name, smp.uid, err)
			}
			created++
		}
	}
	return created, nil
}

func (s *Seeder) build(kind string, smp sample) (*models.Parent, error) {
	p := models.NewParent(kind, smp.name, smp.uid, smp.address, smp.coordinates, smp.fun)
	if smp.password != "" {
		if err := p.SetPassword(smp.password); err != nil {
			return nil, err
		}
	}
	dob, err := models.ParseDate(smp.dob)
	if err != nil {
		return nil, err
	}
	p.DOB = dob

	count := s.postCount()
	for n := 0; n < count; n++ {
		post := models.Child{
			Address:     p.Address,
			Coordinates: p.Coordinates,
			Fun:         p.Fun,
		}
		if kind == "user" {
			post.Note = fmt.Sprintf("#### %s note %d. \n Generated by test data.", p.Name, n)
		}
		p.AppendPost(post)
	}
	return p, nil
}
