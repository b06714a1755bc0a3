// Package skipool embeds the skipool resort search and ride board in a Go
// program, talking to Redis directly instead of going through the HTTP API.
//
//	client, _ := skipool.New(ctx, skipool.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	_, _ = client.Resorts().ImportCatalogue(ctx, false)
//	res, _ := client.Resorts().Search(ctx, skipool.SearchQuery{
//	    Text: "bormio",
//	    Near: &skipool.Point{Lat: 46.5, Lng: 10.1},
//	})
//	for _, r := range res.Results {
//	    fmt.Println(r.Name, r.Score, *r.DistanceKm, len(r.Rides))
//	}
package skipool
