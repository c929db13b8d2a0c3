package service_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"math/rand"
	"testing"
	"time"

	"github.com/okian/roster/internal/adapters/repository"
	service "github.com/okian/roster/internal/app"
	"github.com/okian/roster/internal/domain/auth"
	"github.com/okian/roster/internal/domain/geo"
	"github.com/okian/roster/internal/domain/model"
	"github.com/okian/roster/internal/domain/types"
	"github.com/okian/roster/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func roster() []model.Employee {
	return []model.Employee{
		{ID: "1", Name: "Ada Lovelace", Designation: "Engineer", Salary: model.Float(100), City: "London", Email: "ada@example.com"},
		{ID: "2", Name: "Bo", Designation: "Analyst", Salary: model.Float(51), City: "Mumbai"},
		{ID: "3", Name: "", Designation: "", City: "London"},
		{ID: "4", Name: "Dee Ray", Designation: "Manager", Salary: model.Float(200), City: "Atlantis"},
		{ID: "5", Name: "Eve", Designation: "Intern", Salary: model.Float(10), Extra: map[string]string{"team": "ops"}},
	}
}

func newService(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithDirectory(repository.NewMemoryDirectory(roster())),
		service.WithAuthenticator(auth.New("testuser", "Test123")),
	}
	return service.New(append(base, opts...)...)
}

func login(svc *service.Service) string {
	resp, err := svc.Login(context.Background(), "testuser", "Test123")
	if err != nil {
		panic(err)
	}
	return resp.Token
}

func pngBytes(w, h int) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := newService()

		Convey("When starting and stopping", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Start(context.Background()), ShouldBeNil)
			stats := svc.GetStats()
			svc.Stop()
			svc.Stop()

			Convey("Then stats should describe the roster and geo table", func() {
				So(stats.RosterSize, ShouldEqual, 5)
				So(stats.GeoCities, ShouldEqual, geo.Default().Len())
				So(stats.ActiveSessions, ShouldEqual, 0)
				So(stats.Uptime, ShouldNotBeEmpty)
			})
		})
	})
}

func TestService_Login(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := newService()
		ctx := context.Background()

		Convey("When logging in with the configured credentials", func() {
			resp, err := svc.Login(ctx, "testuser", "Test123")

			Convey("Then a session should be opened with the roster snapshot", func() {
				So(err, ShouldBeNil)
				So(resp.Token, ShouldNotBeEmpty)
				So(resp.Username, ShouldEqual, "testuser")
				So(len(resp.Employees), ShouldEqual, 5)
				So(resp.Employees[0].Salary, ShouldEqual, "$100")
				So(resp.Employees[2].Name, ShouldEqual, model.NotAvailable)
				So(resp.Employees[2].SalaryValue, ShouldEqual, 0)
				So(svc.GetStats().ActiveSessions, ShouldEqual, 1)
			})
		})

		Convey("When logging in with a wrong password", func() {
			_, err := svc.Login(ctx, "testuser", "nope")

			Convey("Then it should fail with invalid credentials", func() {
				So(errors.Is(err, auth.ErrInvalidCredentials), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "Invalid credentials")
			})
		})

		Convey("When the login rate is exhausted", func() {
			limited := newService(service.WithAuthenticator(
				auth.New("testuser", "Test123", auth.WithRateLimit(0.001, 1))))
			_, first := limited.Login(ctx, "testuser", "Test123")
			_, second := limited.Login(ctx, "testuser", "Test123")

			Convey("Then the next attempt should be rate limited", func() {
				So(first, ShouldBeNil)
				So(errors.Is(second, auth.ErrRateLimited), ShouldBeTrue)
			})
		})

		Convey("When logging out", func() {
			token := login(svc)
			svc.Logout(ctx, token)
			svc.Logout(ctx, token)

			Convey("Then the token should no longer authorize", func() {
				_, err := svc.Employees(ctx, token)
				So(errors.Is(err, service.ErrUnauthorized), ShouldBeTrue)
				So(svc.Authorize(ctx, token), ShouldNotBeNil)
				So(svc.GetStats().ActiveSessions, ShouldEqual, 0)
			})
		})

		Convey("When using an empty or unknown token", func() {
			So(errors.Is(svc.Authorize(ctx, ""), service.ErrUnauthorized), ShouldBeTrue)
			So(errors.Is(svc.Authorize(ctx, "missing"), service.ErrUnauthorized), ShouldBeTrue)
		})
	})
}

// noisyPNG encodes an image whose pixels do not compress away, so the file
// size grows with the dimensions.
func noisyPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rnd := rand.New(rand.NewSource(int64(w*h)))
	_, _ = rnd.Read(img.Pix)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func dataURL(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

func TestService_Employees(t *testing.T) {
	Convey("Given a logged-in session", t, func() {
		svc := newService()
		ctx := context.Background()
		token := login(svc)

		Convey("When listing employees", func() {
			list, err := svc.Employees(ctx, token)

			Convey("Then the original order should be kept", func() {
				So(err, ShouldBeNil)
				ids := make([]string, len(list))
				for i, e := range list {
					ids[i] = e.ID
				}
				So(ids, ShouldResemble, []string{"1", "2", "3", "4", "5"})
			})
		})

		Convey("When fetching one employee", func() {
			d, err := svc.Employee(ctx, token, "1")

			Convey("Then the details should include contact fields", func() {
				So(err, ShouldBeNil)
				So(d.Name, ShouldEqual, "Ada Lovelace")
				So(d.Email, ShouldEqual, "ada@example.com")
				So(d.Title, ShouldEqual, "Engineer")
				So(d.HasPhoto, ShouldBeFalse)
			})
		})

		Convey("When fetching an employee with extra fields", func() {
			d, err := svc.Employee(ctx, token, "5")

			Convey("Then extra fields should pass through", func() {
				So(err, ShouldBeNil)
				So(d.Extra["team"], ShouldEqual, "ops")
				So(d.City, ShouldEqual, model.NotAvailable)
			})
		})

		Convey("When fetching an unknown employee", func() {
			_, err := svc.Employee(ctx, token, "99")

			Convey("Then it should be not found", func() {
				So(errors.Is(err, service.ErrEmployeeNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_EmployeeWithoutID(t *testing.T) {
	Convey("Given a roster record with no identifier", t, func() {
		svc := service.New(
			service.WithDirectory(repository.NewMemoryDirectory([]model.Employee{{Name: "No Badge"}})),
			service.WithAuthenticator(auth.New("testuser", "Test123")),
		)
		ctx := context.Background()
		token := login(svc)

		Convey("When listing and then fetching it by the listed id", func() {
			list, err := svc.Employees(ctx, token)
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 1)
			d, err := svc.Employee(ctx, token, list[0].ID)

			Convey("Then the listed id should find the same record", func() {
				So(list[0].ID, ShouldBeEmpty)
				So(err, ShouldBeNil)
				So(d.Name, ShouldEqual, "No Badge")
			})
		})
	})
}

func TestService_SalaryChart(t *testing.T) {
	Convey("Given a logged-in session", t, func() {
		svc := newService()
		ctx := context.Background()
		token := login(svc)

		Convey("When building the default chart", func() {
			chart, err := svc.SalaryChart(ctx, token, "")

			Convey("Then it should be a bar chart over every employee", func() {
				So(err, ShouldBeNil)
				So(chart.Type, ShouldEqual, types.ChartBar)
				So(len(chart.Series), ShouldEqual, 5)
				So(chart.Series[0].Label, ShouldEqual, "Ada")
				So(chart.Series[2].Label, ShouldEqual, model.NotAvailable)
				So(chart.Series[2].Salary, ShouldEqual, 0)
			})

			Convey("Then stats should round the mean half up", func() {
				// (100 + 51 + 0 + 200 + 10) / 5 = 72.2
				So(chart.Stats.Avg, ShouldEqual, 72)
				So(chart.Stats.Max, ShouldEqual, 200)
				So(chart.Stats.Min, ShouldEqual, 0)
			})
		})

		Convey("When asking for a line chart", func() {
			chart, err := svc.SalaryChart(ctx, token, "line")
			So(err, ShouldBeNil)
			So(chart.Type, ShouldEqual, types.ChartLine)
		})

		Convey("When asking for an unknown chart type", func() {
			_, err := svc.SalaryChart(ctx, token, "pie")
			So(errors.Is(err, service.ErrInvalidChartType), ShouldBeTrue)
		})

		Convey("When the token is unknown", func() {
			_, err := svc.SalaryChart(ctx, "nope", "bar")
			So(errors.Is(err, service.ErrUnauthorized), ShouldBeTrue)
		})
	})
}

func TestService_PhotoSizeLimit(t *testing.T) {
	Convey("Given a photo limit just above an image's size", t, func() {
		img := noisyPNG(64, 64)
		limit := int64(len(img) + 16)
		svc := newService(service.WithMaxPhotoBytes(limit))
		ctx := context.Background()
		token := login(svc)

		Convey("When the image arrives as a data URL longer than the limit", func() {
			url := dataURL(img)
			So(int64(len(url)), ShouldBeGreaterThan, limit)
			info, err := svc.CapturePhoto(ctx, token, "1", []byte(url))

			Convey("Then the decoded size should be checked instead", func() {
				So(err, ShouldBeNil)
				So(info.Size, ShouldEqual, len(img))
				So(info.Width, ShouldEqual, 64)
			})
		})

		Convey("When a data URL decodes to more than the limit", func() {
			bigger := noisyPNG(96, 96)
			So(int64(len(bigger)), ShouldBeGreaterThan, limit)
			_, err := svc.CapturePhoto(ctx, token, "1", []byte(dataURL(bigger)))

			Convey("Then it should be too large", func() {
				So(errors.Is(err, service.ErrPhotoTooLarge), ShouldBeTrue)
			})
		})
	})
}

func TestService_CityMap(t *testing.T) {
	Convey("Given a logged-in session", t, func() {
		svc := newService()
		ctx := context.Background()
		token := login(svc)

		Convey("When building the city map", func() {
			view, err := svc.CityMap(ctx, token)

			Convey("Then only resolvable cities should become clusters", func() {
				So(err, ShouldBeNil)
				So(view.CityCount, ShouldEqual, 2)
				So(view.Clusters[0].City, ShouldEqual, "London")
				So(view.Clusters[0].Count, ShouldEqual, 2)
				So(view.Clusters[1].City, ShouldEqual, "Mumbai")
				So(view.TotalEmployees, ShouldEqual, 5)
				So(view.MappedEmployees, ShouldEqual, 3)
			})

			Convey("Then members should read name - designation", func() {
				So(view.Clusters[0].Members, ShouldResemble,
					[]string{"Ada Lovelace - Engineer", "N/A - N/A"})
			})

			Convey("Then the centroid should be the unweighted mean", func() {
				london, _ := geo.Default().Lookup("London")
				mumbai, _ := geo.Default().Lookup("Mumbai")
				So(view.Centroid.Lat, ShouldAlmostEqual, (london.Lat+mumbai.Lat)/2, 1e-9)
				So(view.Centroid.Lng, ShouldAlmostEqual, (london.Lng+mumbai.Lng)/2, 1e-9)
				So(view.Bounds, ShouldNotBeNil)
				So(view.Bounds.NorthEast.Lat, ShouldEqual, london.Lat)
				So(view.Bounds.SouthWest.Lat, ShouldEqual, mumbai.Lat)
			})
		})

		Convey("When no city resolves", func() {
			empty := newService(service.WithGeoTable(geo.NewTable(nil)))
			view, err := empty.CityMap(ctx, login(empty))

			Convey("Then the fallback centroid should be used", func() {
				So(err, ShouldBeNil)
				So(view.Clusters, ShouldBeEmpty)
				So(view.Centroid, ShouldResemble, types.LatLng{Lat: 20, Lng: 78})
				So(view.Bounds, ShouldBeNil)
				So(view.MappedEmployees, ShouldEqual, 0)
			})
		})

		Convey("When exporting GeoJSON", func() {
			fc, err := svc.CityMapGeoJSON(ctx, token)

			Convey("Then there should be one point feature per cluster", func() {
				So(err, ShouldBeNil)
				So(len(fc.Features), ShouldEqual, 2)
				So(fc.Features[0].ID, ShouldEqual, "London")
				So(fc.Features[0].Properties["count"], ShouldEqual, 2)
				So(fc.BBox, ShouldNotBeNil)
			})
		})
	})
}

func TestService_Photos(t *testing.T) {
	Convey("Given a logged-in session", t, func() {
		captured := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		svc := newService(
			service.WithMaxPhotoBytes(64*1024),
			service.WithClock(func() time.Time { return captured }),
		)
		ctx := context.Background()
		token := login(svc)

		Convey("When capturing raw PNG bytes", func() {
			info, err := svc.CapturePhoto(ctx, token, "1", pngBytes(4, 3))

			Convey("Then the photo metadata should be returned", func() {
				So(err, ShouldBeNil)
				So(info.ContentType, ShouldEqual, "image/png")
				So(info.Width, ShouldEqual, 4)
				So(info.Height, ShouldEqual, 3)
				So(info.CapturedAt, ShouldEqual, captured)
			})

			Convey("Then it should be downloadable", func() {
				file, err := svc.Photo(ctx, token, "1")
				So(err, ShouldBeNil)
				So(file.Filename, ShouldEqual, "photo-Ada Lovelace.png")
				So(file.Data, ShouldResemble, pngBytes(4, 3))

				d, _ := svc.Employee(ctx, token, "1")
				So(d.HasPhoto, ShouldBeTrue)
			})
		})

		Convey("When capturing a data URL", func() {
			url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(2, 2))
			info, err := svc.CapturePhoto(ctx, token, "2", []byte(url))

			Convey("Then it should be decoded", func() {
				So(err, ShouldBeNil)
				So(info.Width, ShouldEqual, 2)
				So(info.Size, ShouldEqual, len(pngBytes(2, 2)))
			})
		})

		Convey("When the payload is not an image", func() {
			_, err := svc.CapturePhoto(ctx, token, "1", []byte("hello"))
			So(errors.Is(err, service.ErrInvalidPhoto), ShouldBeTrue)
		})

		Convey("When the data URL is malformed", func() {
			_, err := svc.CapturePhoto(ctx, token, "1", []byte("data:image/png;base64,@@@"))
			So(errors.Is(err, service.ErrInvalidPhoto), ShouldBeTrue)
		})

		Convey("When the payload is too large", func() {
			_, err := svc.CapturePhoto(ctx, token, "1", make([]byte, 64*1024+1))
			So(errors.Is(err, service.ErrPhotoTooLarge), ShouldBeTrue)
		})

		Convey("When the image is cut off after its header", func() {
			truncated := pngBytes(40, 40)[:33]
			_, err := svc.CapturePhoto(ctx, token, "1", truncated)

			Convey("Then it should be rejected and nothing stored", func() {
				So(errors.Is(err, service.ErrInvalidPhoto), ShouldBeTrue)
				_, err := svc.Photo(ctx, token, "1")
				So(errors.Is(err, service.ErrNoPhoto), ShouldBeTrue)
			})
		})

		Convey("When the employee is unknown", func() {
			_, err := svc.CapturePhoto(ctx, token, "99", pngBytes(1, 1))
			So(errors.Is(err, service.ErrEmployeeNotFound), ShouldBeTrue)
		})

		Convey("When nothing was captured yet", func() {
			_, err := svc.Photo(ctx, token, "3")
			So(errors.Is(err, service.ErrNoPhoto), ShouldBeTrue)
		})

		Convey("When the session is closed", func() {
			_, _ = svc.CapturePhoto(ctx, token, "1", pngBytes(1, 1))
			svc.Logout(ctx, token)
			fresh := login(svc)

			Convey("Then a new session should not see old photos", func() {
				_, err := svc.Photo(ctx, fresh, "1")
				So(errors.Is(err, service.ErrNoPhoto), ShouldBeTrue)
			})
		})
	})
}
