package bitframe_test

import (
	"context"
	"fmt"
	"log"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/bitframe"
	"github.com/hupe1980/bitframe/rowsource"
)

func ExampleLoader_LoadReader() {
	loader := bitframe.NewLoader([]string{"X"}, []string{"Y"})

	df, err := loader.LoadReader(context.Background(), rowsource.FromString("X,Y\na,1\nb,2\na,3\n"))
	if err != nil {
		log.Fatal(err)
	}

	x, _ := df.Column("X")
	for _, v := range x.Dictionary().Values() {
		bm, _ := x.Bitmap(v)
		fmt.Println(v, bm)
	}

	y, _ := df.Metric("Y")
	fmt.Println(y.Values())
	// Output:
	// a 101
	// b 010
	// [1 2 3]
}

func ExampleLoader_Load_roaring() {
	r, err := rowsource.NewReader(rowsource.FromString("country;device\nDE;mobile\nFR;mobile\nDE;desktop\nDE;mobile\n"),
		func(o *rowsource.Options) {
			o.Delimiter = ';'
		})
	if err != nil {
		log.Fatal(err)
	}

	df, err := bitframe.NewLoader([]string{"country", "device"}, nil).Load(context.Background(), r)
	if err != nil {
		log.Fatal(err)
	}

	country, _ := df.Column("country")
	device, _ := df.Column("device")
	de, _ := country.RoaringBitmap("DE")
	mobile, _ := device.RoaringBitmap("mobile")

	fmt.Println(roaring.And(de, mobile).ToArray())
	// Output:
	// [0 3]
}
