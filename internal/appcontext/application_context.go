package appcontext

import (
	"context"
	"fmt"
	"log"
	"reflect"

	"github.com/RoyceAzure/lab/shopcenter/internal/config"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/verification"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/rj/api/token"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	DbConn            *gorm.DB
	DbDao             db.UnifiedDB
	RedisClient       *redis.Client
	Cf                *config.Config
	TokenMaker        token.Maker[uuid.UUID]
	ArtifactGenerator verification.IArtifactGenerator
	SessionService    service.ISessionService
	UserService       service.IUserService
	AuthService       service.IAuthService
	ProductService    service.IProductService
	CartService       service.ICartService
	AddressService    service.IAddressService
	OrderService      service.IOrderService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	v := reflect.ValueOf(*cf)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fieldName := t.Field(i).Name
		fieldValue := v.Field(i).Interface()
		fmt.Printf("  \"%s\": \"%v\",\n", fieldName, fieldValue)
	}
	err := app.Init()

	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpdbConn()
	if err != nil {
		return err
	}
	err = app.setUpdbDao()
	if err != nil {
		return err
	}

	err = app.setUpRedisClient()
	if err != nil {
		return err
	}

	err = app.setTokenMaker()
	if err != nil {
		return err
	}

	err = app.setUpSessionService()
	if err != nil {
		return err
	}

	err = app.setUpUserService()
	if err != nil {
		return err
	}

	err = app.setUpAuthService()
	if err != nil {
		return err
	}

	err = app.setUpProductService()
	if err != nil {
		return err
	}

	err = app.setUpCartService()
	if err != nil {
		return err
	}

	err = app.setUpAddressService()
	if err != nil {
		return err
	}

	err = app.setUpOrderService()
	if err != nil {
		return err
	}

	err = app.dbInit()
	if err != nil {
		return err
	}

	//清除過期user session  for server意外關閉情況
	log.Printf("cleanning expired user sessions...")
	app.SessionService.DeleteExpiredSessions(context.TODO())
	log.Printf("cleanning expired user sessions successed")

	return nil
}

func (app *ApplicationContext) setUpdbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpdbDao() error {
	log.Printf("Start setup database DAO")
	app.DbDao = db.NewUnifiedDB(app.DbConn)
	log.Printf("Finish setup database DAO")
	return nil
}

func (app *ApplicationContext) setUpRedisClient() error {
	log.Printf("Start setup redis client")
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
	})
	log.Printf("Finish setup redis client")
	return nil
}

func (app *ApplicationContext) setUpSessionService() error {
	log.Printf("Start setup session service")
	app.SessionService = service.NewSessionService(app.DbDao)
	log.Printf("Finish setup session service")
	return nil
}

func (app *ApplicationContext) setUpUserService() error {
	log.Printf("Start setup user service")
	app.UserService = service.NewUserService(app.DbDao)
	log.Printf("Finish setup user service")
	return nil
}

func (app *ApplicationContext) setUpAuthService() error {
	log.Printf("Start setup auth service")
	app.AuthService = service.NewAuthService(app.UserService, app.SessionService, app.TokenMaker)
	log.Printf("Finish setup auth service")
	return nil
}

func (app *ApplicationContext) setUpProductService() error {
	log.Printf("Start setup product service")
	app.ProductService = service.NewProductService(app.DbDao, redis_repo.NewProductCacheRepo(app.RedisClient))
	log.Printf("Finish setup product service")
	return nil
}

func (app *ApplicationContext) setUpCartService() error {
	log.Printf("Start setup cart service")
	app.CartService = service.NewCartService(app.DbDao)
	log.Printf("Finish setup cart service")
	return nil
}

func (app *ApplicationContext) setUpAddressService() error {
	log.Printf("Start setup address service")
	app.AddressService = service.NewAddressService(app.DbDao)
	log.Printf("Finish setup address service")
	return nil
}

func (app *ApplicationContext) setUpOrderService() error {
	log.Printf("Start setup order service")
	app.ArtifactGenerator = verification.NewQRCodeGenerator()
	app.OrderService = service.NewOrderService(app.DbDao, app.ArtifactGenerator)
	log.Printf("Finish setup order service")
	return nil
}

func (app *ApplicationContext) setTokenMaker() error {
	log.Printf("Start setup token maker")

	tokenMaker, err := token.NewPasetoMaker[uuid.UUID](app.Cf.AuthTokenKey)
	if err != nil {
		log.Fatalf("無法創建 token maker: %v", err)
	}

	app.TokenMaker = tokenMaker
	log.Printf("Finish setup token maker")
	return nil
}

// db schema migration
func (app *ApplicationContext) dbInit() error {
	log.Printf("Start setup db init")

	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}

	log.Printf("Finish setup db init")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		//清除過期user session
		log.Printf("cleanning expired user sessions...")
		app.SessionService.DeleteExpiredSessions(ctx)
		log.Printf("cleanning expired user sessions successed")

		// 關閉 redis
		if app.RedisClient != nil {
			log.Printf("Closing redis client...")
			if err := app.RedisClient.Close(); err != nil {
				//有錯誤不結束流程
				log.Printf("redis client shutdown error: %v", err)
			}
		}

		// 關閉 DB
		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			if sqlDB, err := app.DbConn.DB(); err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
