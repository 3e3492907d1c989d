package restaurant

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("restaurant not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create restaurant with its dishes (ATOMIC)
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO restaurants (name, price_tier, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`,
		restaurant.Name,
		restaurant.PriceTier,
		restaurant.Latitude,
		restaurant.Longitude,
	).Scan(&restaurant.ID, &restaurant.CreatedAt)
	if err != nil {
		return err
	}

	for i := range restaurant.Dishes {
		dish := &restaurant.Dishes[i]
		dish.RestaurantID = restaurant.ID

		err = tx.QueryRow(ctx, `
			INSERT INTO dishes (restaurant_id, name, price)
			VALUES ($1, $2, $3)
			RETURNING id
		`,
			dish.RestaurantID,
			dish.Name,
			dish.Price,
		).Scan(&dish.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Full catalog, dishes eagerly loaded
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context) ([]Restaurant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price_tier, latitude, longitude, images, created_at
		FROM restaurants
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}

	restaurants, err := scanRestaurants(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadDishes(ctx, restaurants); err != nil {
		return nil, err
	}

	return restaurants, nil
}

// --------------------------------------------------
// Single restaurant lookup
// --------------------------------------------------
func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Restaurant, error) {
	var res Restaurant
	err := r.db.QueryRow(ctx, `
		SELECT id, name, price_tier, latitude, longitude, images, created_at
		FROM restaurants
		WHERE id = $1
	`, id).Scan(
		&res.ID,
		&res.Name,
		&res.PriceTier,
		&res.Latitude,
		&res.Longitude,
		&res.Images,
		&res.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	restaurants := []Restaurant{res}
	if err := r.loadDishes(ctx, restaurants); err != nil {
		return nil, err
	}

	return &restaurants[0], nil
}

// --------------------------------------------------
// Update restaurant, replacing the dish list
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, restaurant *Restaurant) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE restaurants
		SET name = $1, price_tier = $2, latitude = $3, longitude = $4
		WHERE id = $5
	`,
		restaurant.Name,
		restaurant.PriceTier,
		restaurant.Latitude,
		restaurant.Longitude,
		restaurant.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM dishes WHERE restaurant_id = $1`, restaurant.ID); err != nil {
		return err
	}

	for i := range restaurant.Dishes {
		dish := &restaurant.Dishes[i]
		dish.RestaurantID = restaurant.ID

		err = tx.QueryRow(ctx, `
			INSERT INTO dishes (restaurant_id, name, price)
			VALUES ($1, $2, $3)
			RETURNING id
		`,
			dish.RestaurantID,
			dish.Name,
			dish.Price,
		).Scan(&dish.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Delete restaurant (dishes cascade)
// --------------------------------------------------
func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Filter: case-insensitive name substring
// --------------------------------------------------
func (r *PostgresRepository) FilterByName(ctx context.Context, name string) ([]Restaurant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price_tier, latitude, longitude, images, created_at
		FROM restaurants
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id
	`, name)
	if err != nil {
		return nil, err
	}

	restaurants, err := scanRestaurants(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadDishes(ctx, restaurants); err != nil {
		return nil, err
	}

	return restaurants, nil
}

// --------------------------------------------------
// Filter: price tier
// --------------------------------------------------
func (r *PostgresRepository) FilterByPriceTier(ctx context.Context, tier string) ([]Restaurant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price_tier, latitude, longitude, images, created_at
		FROM restaurants
		WHERE price_tier = $1
		ORDER BY id
	`, tier)
	if err != nil {
		return nil, err
	}

	restaurants, err := scanRestaurants(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadDishes(ctx, restaurants); err != nil {
		return nil, err
	}

	return restaurants, nil
}

// --------------------------------------------------
// Filter: haversine distance within radiusKm
// --------------------------------------------------
func (r *PostgresRepository) FilterByRadius(ctx context.Context, lat, lng, radiusKm float64) ([]Restaurant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price_tier, latitude, longitude, images, created_at
		FROM restaurants
		WHERE 6371 * acos(least(1.0,
			cos(radians($1)) * cos(radians(latitude)) *
			cos(radians(longitude) - radians($2)) +
			sin(radians($1)) * sin(radians(latitude))
		)) <= $3
		ORDER BY id
	`, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}

	restaurants, err := scanRestaurants(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadDishes(ctx, restaurants); err != nil {
		return nil, err
	}

	return restaurants, nil
}

// --------------------------------------------------
// Append image URLs to a restaurant
// --------------------------------------------------
func (r *PostgresRepository) SaveImages(ctx context.Context, restaurantID int, urls []string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET images = images || $1
		WHERE id = $2
	`, urls, restaurantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Row helpers
// --------------------------------------------------
func scanRestaurants(rows pgx.Rows) ([]Restaurant, error) {
	defer rows.Close()

	var restaurants []Restaurant
	for rows.Next() {
		var res Restaurant
		if err := rows.Scan(
			&res.ID,
			&res.Name,
			&res.PriceTier,
			&res.Latitude,
			&res.Longitude,
			&res.Images,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, res)
	}

	return restaurants, rows.Err()
}

// loadDishes attaches every restaurant's dishes in insertion order.
func (r *PostgresRepository) loadDishes(ctx context.Context, restaurants []Restaurant) error {
	if len(restaurants) == 0 {
		return nil
	}

	ids := make([]int, 0, len(restaurants))
	index := make(map[int]*Restaurant, len(restaurants))
	for i := range restaurants {
		ids = append(ids, restaurants[i].ID)
		index[restaurants[i].ID] = &restaurants[i]
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, restaurant_id, name, price
		FROM dishes
		WHERE restaurant_id = ANY($1)
		ORDER BY restaurant_id, id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var dish Dish
		if err := rows.Scan(&dish.ID, &dish.RestaurantID, &dish.Name, &dish.Price); err != nil {
			return err
		}
		if res, ok := index[dish.RestaurantID]; ok {
			res.Dishes = append(res.Dishes, dish)
		}
	}

	return rows.Err()
}
